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

	"github.com/kraftflix/movie-api/internal/core/domain"
)

const collectionMovies = "movies"

type MovieRepository struct {
	col *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{col: db.Collection(collectionMovies)}
}

type mongoMovie struct {
	ID          primitive.ObjectID `bson:"_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Genre       domain.Genre       `bson:"genre"`
	Director    domain.Director    `bson:"director"`
	Actors      []string           `bson:"actors"`
	ImageURL    string             `bson:"image_url"`
	Featured    bool               `bson:"featured"`
}

func (m *mongoMovie) toDomain() *domain.Movie {
	return &domain.Movie{
		ID:          m.ID.Hex(),
		Title:       m.Title,
		Description: m.Description,
		Genre:       m.Genre,
		Director:    m.Director,
		Actors:      m.Actors,
		ImageURL:    m.ImageURL,
		Featured:    m.Featured,
	}
}

func (r *MovieRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoMovie
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}
	movies := make([]*domain.Movie, 0, len(docs))
	for i := range docs {
		movies = append(movies, docs[i].toDomain())
	}
	return movies, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMovieNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid}, nil)
}

func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"title": title}, nil)
}

// FindDirector returns the director embedded in the first movie they directed.
func (r *MovieRepository) FindDirector(ctx context.Context, name string) (*domain.Director, error) {
	m, err := r.findOne(ctx, bson.M{"director.name": name}, bson.M{"director": 1})
	if err != nil {
		return nil, err
	}
	return &m.Director, nil
}

func (r *MovieRepository) FindGenre(ctx context.Context, name string) (*domain.Genre, error) {
	m, err := r.findOne(ctx, bson.M{"genre.name": name}, bson.M{"genre": 1})
	if err != nil {
		return nil, err
	}
	return &m.Genre, nil
}

func (r *MovieRepository) findOne(ctx context.Context, filter, projection bson.M) (*domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var mm mongoMovie
	if err := r.col.FindOne(ctx, filter, opts).Decode(&mm); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return mm.toDomain(), nil
}

// EnsureIndexes creates the lookup indexes used by the catalog routes.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "director.name", Value: 1}}},
		{Keys: bson.D{{Key: "genre.name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
