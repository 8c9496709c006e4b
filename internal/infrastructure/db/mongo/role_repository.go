package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

const (
	collectionRoles       = "users_role"
	collectionPermissions = "role_permissions"
	collectionRoleMenu    = "role_menu"
)

// RoleRepository persists operator roles, permissions, and menu grants.
type RoleRepository struct {
	db *mongo.Database
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) Roles(ctx context.Context) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.db.Collection(collectionRoles).
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var roles []domain.Role
	if err := cur.All(ctx, &roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return roles, nil
}

func (r *RoleRepository) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	role := domain.Role{Name: name, CreatedAt: time.Now().UTC()}
	res, err := r.db.Collection(collectionRoles).InsertOne(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("insert role: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		role.ID = oid.Hex()
	}
	return &role, nil
}

func (r *RoleRepository) UpdateRole(ctx context.Context, id, name string) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	res := r.db.Collection(collectionRoles).FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"name": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var role domain.Role
	if err := res.Decode(&role); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("update role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepository) DeleteRole(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoleNotFound
	}

	res, err := r.db.Collection(collectionRoles).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

func (r *RoleRepository) Permissions(ctx context.Context) ([]domain.RolePermission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.db.Collection(collectionPermissions).
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "role", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer cur.Close(ctx)

	var perms []domain.RolePermission
	if err := cur.All(ctx, &perms); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}
	return perms, nil
}

// PermissionByRole returns (nil, nil) when the role has no permission row.
func (r *RoleRepository) PermissionByRole(ctx context.Context, role string) (*domain.RolePermission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var perm domain.RolePermission
	err := r.db.Collection(collectionPermissions).FindOne(ctx, bson.M{"role": role}).Decode(&perm)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find permission: %w", err)
	}
	return &perm, nil
}

func (r *RoleRepository) CreatePermission(ctx context.Context, perm *domain.RolePermission) (*domain.RolePermission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	perm.ID = ""
	perm.CreatedAt = time.Now().UTC()
	res, err := r.db.Collection(collectionPermissions).InsertOne(ctx, perm)
	if err != nil {
		return nil, fmt.Errorf("insert permission: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		perm.ID = oid.Hex()
	}
	return perm, nil
}

func (r *RoleRepository) UpdatePermission(ctx context.Context, perm *domain.RolePermission) (*domain.RolePermission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(perm.ID)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	update := bson.M{"$set": bson.M{
		"role":                 perm.Role,
		"administrar_usuarios": perm.ManageUsers,
		"administrar_leads":    perm.ManageLeads,
		"administrar_precios":  perm.ManagePrices,
	}}

	res := r.db.Collection(collectionPermissions).FindOneAndUpdate(ctx,
		bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated domain.RolePermission
	if err := res.Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("update permission: %w", err)
	}
	return &updated, nil
}

func (r *RoleRepository) DeletePermission(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRoleNotFound
	}

	res, err := r.db.Collection(collectionPermissions).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRoleNotFound
	}
	return nil
}

// MenuByRole returns (nil, nil) when the role has no menu row.
func (r *RoleRepository) MenuByRole(ctx context.Context, role string) (*domain.RoleMenu, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var menu domain.RoleMenu
	err := r.db.Collection(collectionRoleMenu).FindOne(ctx, bson.M{"role": role}).Decode(&menu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find role menu: %w", err)
	}
	return &menu, nil
}
