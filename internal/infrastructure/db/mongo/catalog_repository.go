package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

const (
	collectionProvinces      = "provincias"
	collectionMunicipalities = "municipios"
	collectionAvailability   = "servicios_municipios"
	collectionPaymentMethods = "metodos_pago"
)

// CatalogRepository reads the static reference tables.
type CatalogRepository struct {
	db *mongo.Database
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Provinces(ctx context.Context) ([]domain.Province, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.db.Collection(collectionProvinces).
		Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list provinces: %w", err)
	}
	defer cur.Close(ctx)

	var provinces []domain.Province
	if err := cur.All(ctx, &provinces); err != nil {
		return nil, fmt.Errorf("decode provinces: %w", err)
	}
	return provinces, nil
}

func (r *CatalogRepository) MunicipalitiesByProvince(ctx context.Context, province string) ([]domain.Municipality, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.db.Collection(collectionMunicipalities).
		Find(ctx, bson.M{"provincia": province}, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list municipalities: %w", err)
	}
	defer cur.Close(ctx)

	var municipalities []domain.Municipality
	if err := cur.All(ctx, &municipalities); err != nil {
		return nil, fmt.Errorf("decode municipalities: %w", err)
	}
	return municipalities, nil
}

// Availability returns (nil, nil) when the municipality has no explicit
// record; the caller defaults to both methods available.
func (r *CatalogRepository) Availability(ctx context.Context, municipality string) (*domain.ServiceAvailability, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var availability domain.ServiceAvailability
	err := r.db.Collection(collectionAvailability).
		FindOne(ctx, bson.M{"municipio": municipality}).Decode(&availability)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find availability: %w", err)
	}
	return &availability, nil
}

func (r *CatalogRepository) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.db.Collection(collectionPaymentMethods).
		Find(ctx, bson.M{"activo": true}, options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	defer cur.Close(ctx)

	var methods []domain.PaymentMethod
	if err := cur.All(ctx, &methods); err != nil {
		return nil, fmt.Errorf("decode payment methods: %w", err)
	}
	return methods, nil
}
