package domain

import (
	"errors"
	"time"
)

var ErrFolderNotFound = errors.New("folder not found")
var ErrDuplicateFolder = errors.New("folder already exists")

// Folder groups a user's saved products.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}
