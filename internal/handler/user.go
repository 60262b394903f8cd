package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/flakonuz/catalog-backend/internal/config"
	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/repository"
	"github.com/flakonuz/catalog-backend/internal/utils"
)

// UserHandler covers admin profile maintenance: names, the profile image
// (stored in the admins image partition) and the password. All routes sit
// behind the bearer middleware; profile edits additionally require the
// authenticated credential to be the one being edited.
type UserHandler struct {
	Cfg    config.Config
	Users  repository.UserRepository
	Images repository.ImageRepository
}

func NewUserHandler(cfg config.Config, users repository.UserRepository, images repository.ImageRepository) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Images: images}
}

// actor pulls the credential the bearer middleware resolved.
func actor(c echo.Context) *model.User {
	u, _ := c.Get("user").(*model.User)
	return u
}

// UpdateProfile handles PUT /api/user/profile/:id.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	name := c.FormValue("name")
	surname := c.FormValue("surname")
	username := c.FormValue("username")
	userID := c.Param("id")

	if name == "" || surname == "" || username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Name, surname and username required!"})
	}
	if len(name) < 3 || len(name) > 20 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "The length of the \"Firstname\" should be 3 characters or more and less than 20 characters!"})
	}
	if len(surname) < 3 || len(surname) > 20 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "The length of the \"Lastname\" should be 3 characters or more and less than 20 characters!"})
	}
	if len(username) < h.Cfg.UsernameMin || len(username) > h.Cfg.UsernameMax {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": fmt.Sprintf("The length of the \"Username\" should be %d characters or more and less than %d characters!", h.Cfg.UsernameMin, h.Cfg.UsernameMax)})
	}

	cur := actor(c)
	if cur == nil || cur.ID != userID {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized."})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Profile update failed, try again later!"})
	}

	u.Name = name
	u.Surname = surname
	u.Username = username
	if err := h.Users.Replace(ctx, u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Profile update failed, try again later!"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Your profile successfully updated!",
		"user":    u.View(),
	})
}

// UpdateProfileImage handles POST /api/user/profile-photo/:id (multipart).
// With a prior image on record the binary is replaced, old one deleted
// first; otherwise a fresh one is attached.
func (h *UserHandler) UpdateProfileImage(c echo.Context) error {
	userID := c.Param("id")

	path, ok, err := saveUpload(c, h.Cfg.UploadDir)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded."})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Profile image update failed, try again later!"})
	}

	var imageID string
	if u.Image != "" {
		imageID, err = h.Images.Replace(ctx, repository.KindAdmins, u.Image, path)
	} else {
		imageID, err = h.Images.Attach(ctx, repository.KindAdmins, path)
	}
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Profile image not found in database!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Error in saving image file!"})
	}

	u.Image = imageID
	if err := h.Users.Replace(ctx, u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Profile image update failed, try again later!"})
	}

	img, err := h.Images.Get(ctx, repository.KindAdmins, imageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Profile image update failed, try again later!"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Your profile image successfully updated!",
		"image":   img,
	})
}

// DeleteProfileImage handles DELETE /api/user/profile-photo/:id. The binary
// is deleted before the reference is cleared; a missing binary aborts.
func (h *UserHandler) DeleteProfileImage(c echo.Context) error {
	userID := c.Param("id")

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Profile image delete failed, try again later!"})
	}

	if u.Image != "" {
		if err := h.Images.Detach(ctx, repository.KindAdmins, u.Image); err != nil {
			if errors.Is(err, repository.ErrImageNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"message": "Profile image not found!"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Profile image delete failed, try again later!"})
		}
	}

	u.Image = ""
	if err := h.Users.Replace(ctx, u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Profile image delete failed, try again later!"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Your profile image successfully deleted!",
		"image":   "",
	})
}

// UpdatePassword handles PUT /api/user/profile-password/:id. The stored
// transform is
// decoded and compared against the old password before the new one is
// encoded under the same internal id and persisted.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	password := c.FormValue("password")
	newPassword := c.FormValue("newPassword")
	userID := c.Param("id")

	if password == "" || newPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Password and New Password required!"})
	}
	if len(password) < h.Cfg.PasswordMin || len(password) > h.Cfg.PasswordMax {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": fmt.Sprintf("The length of the \"Password\" should be %d characters or more and less than %d characters!", h.Cfg.PasswordMin, h.Cfg.PasswordMax)})
	}
	if len(newPassword) < h.Cfg.PasswordMin || len(newPassword) > h.Cfg.PasswordMax {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": fmt.Sprintf("The length of the \"newPassword\" should be %d characters or more and less than %d characters!", h.Cfg.PasswordMin, h.Cfg.PasswordMax)})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found!"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Password update failed, try again later!"})
	}

	if password != utils.DecodePassword(u.Password, u.ID, h.Cfg.PasswordMarker) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Your current password entered incorrectly!"})
	}

	u.Password = utils.EncodePassword(newPassword, u.ID, h.Cfg.PasswordMarker)
	if err := h.Users.Replace(ctx, u); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Password update failed, try again later!"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  http.StatusOK,
		"message": "Your password successfully edited!",
		"user":    u.View(),
	})
}
