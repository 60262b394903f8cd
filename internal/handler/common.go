package handler

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/flakonuz/catalog-backend/internal/model"
	"github.com/flakonuz/catalog-backend/internal/queue"
	"github.com/flakonuz/catalog-backend/internal/repository"
	"github.com/flakonuz/catalog-backend/internal/service"
)

const dbTimeout = 5 * time.Second

// reqCtx bounds a database call with the request context plus a timeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// pageParams reads page/limit query parameters with the usual defaults.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// filterBySubstring keeps the documents whose field contains search,
// case-insensitively. An empty search matches everything; documents where
// the field is missing or not a string are dropped, matching how the admin
// UI drives these lists.
func filterBySubstring(docs []bson.M, field, search string) []bson.M {
	if search == "" {
		return docs
	}
	needle := strings.ToLower(search)
	out := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		if v, ok := d[field].(string); ok && strings.Contains(strings.ToLower(v), needle) {
			out = append(out, d)
		}
	}
	return out
}

// paginate slices the filtered set into [(page-1)*limit, page*limit) and
// builds the pagination block over the filtered total.
func paginate(docs []bson.M, page, limit int) ([]bson.M, model.Pagination) {
	total := len(docs)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := page * limit
	if end > total {
		end = total
	}
	pg := model.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
	return docs[start:end], pg
}

// strField reads a string field from a raw document; absent or non-string
// values come back empty.
func strField(doc bson.M, key string) string {
	v, _ := doc[key].(string)
	return v
}

// pick returns the submitted value or falls back to the stored one when the
// request omitted the field. Localized fields on edit all merge this way.
func pick(submitted string, current bson.M, key string) string {
	if submitted != "" {
		return submitted
	}
	return strField(current, key)
}

// slugify turns a title into the caller-assigned id form used throughout
// the catalog ("Table Vases" -> "table-vases").
func slugify(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), "-"))
}

// saveUpload stages the multipart "image" file under dir and returns its
// path. ok is false when the request carried no file.
func saveUpload(c echo.Context, dir string) (path string, ok bool, err error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", false, nil
	}
	src, err := fh.Open()
	if err != nil {
		return "", true, err
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", true, err
	}
	path = filepath.Join(dir, filepath.Base(fh.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", true, err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", true, err
	}
	return path, true, nil
}

// withImage copies the document and swaps its image reference for the full
// image document (or nil when it resolves to nothing). List and get
// responses embed images this way.
func withImage(ctx context.Context, images repository.ImageRepository, kind string, doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	img, err := images.Get(ctx, kind, strField(doc, "image"))
	if err != nil {
		out["image"] = nil
		return out
	}
	out["image"] = img
	return out
}

// idBatch parses the JSON array of storage ids the delete-many endpoints
// receive in their path parameter.
func idBatch(c echo.Context) ([]string, bool) {
	var ids []string
	if err := json.Unmarshal([]byte(c.Param("id")), &ids); err != nil || len(ids) == 0 {
		return nil, false
	}
	return ids, true
}

// publishChange emits an audit event after a successful mutation. Failures
// are already logged by the publisher and never surface to the client.
func publishChange(c echo.Context, events service.EventPublisher, kind, id, action string) {
	if events == nil {
		return
	}
	ev := queue.ContentChangedEvent{
		Kind:   kind,
		ID:     id,
		Action: action,
		At:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := events.PublishContentChanged(c.Request().Context(), ev); err != nil {
		log.Printf("audit event dropped: kind=%s id=%s action=%s", kind, id, action)
	}
}
