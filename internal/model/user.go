package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an admin credential record in the admins collection. The stored
// password is the reversible transform of the plaintext keyed by ID, and
// Token is the static bearer value assigned when the account is created.
type User struct {
	StorageID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ID        string             `bson:"id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Surname   string             `bson:"surname" json:"surname"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"`
	Token     string             `bson:"access_token" json:"-"`
	Image     string             `bson:"image" json:"image"`
}

// UserView is the sanitized shape returned to clients: no password, no token.
type UserView struct {
	StorageID primitive.ObjectID `json:"_id,omitempty"`
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Surname   string             `json:"surname"`
	Username  string             `json:"username"`
	Image     string             `json:"image"`
}

// View strips the credential fields for responses.
func (u *User) View() UserView {
	return UserView{
		StorageID: u.StorageID,
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Username:  u.Username,
		Image:     u.Image,
	}
}
