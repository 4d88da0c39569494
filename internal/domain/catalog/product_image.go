package catalog

import (
	"fmt"
	"path"
	"strings"

	"github.com/ecommerce/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const maxFileNameLength = 255

// ProductImage is an image file stored in object storage for a product
type ProductImage struct {
	shared.BaseEntity
	ProductID   uuid.UUID
	StorageKey  string
	ContentType string
	FileName    string
}

// NewProductImage creates an image record and derives its storage key
func NewProductImage(productID uuid.UUID, fileName, contentType string) (*ProductImage, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	fileName = path.Base(strings.TrimSpace(fileName))
	if fileName == "" || fileName == "." || fileName == "/" {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name is required")
	}
	if len(fileName) > maxFileNameLength {
		return nil, shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "image/") {
		return nil, shared.NewDomainError("INVALID_CONTENT_TYPE", "Only image uploads are allowed")
	}

	image := &ProductImage{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ContentType: contentType,
		FileName:    fileName,
	}
	image.StorageKey = fmt.Sprintf("products/%s/%s-%s", productID, image.ID, fileName)
	return image, nil
}
