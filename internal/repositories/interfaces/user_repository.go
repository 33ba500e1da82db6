package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jerome2525/wingz-api/internal/models"
	"github.com/jerome2525/wingz-api/internal/utils"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, role *models.Role, params *utils.PaginationParams) ([]*models.User, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// GetByIDs bulk-loads users for embedding into ride payloads.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.User, error)

	// FindIDsByEmailContains / FindIDsByNameContains resolve the listing's
	// case-insensitive substring filters into principal id sets; name
	// matches against either first or last name.
	FindIDsByEmailContains(ctx context.Context, fragment string) ([]primitive.ObjectID, error)
	FindIDsByNameContains(ctx context.Context, fragment string) ([]primitive.ObjectID, error)
}
