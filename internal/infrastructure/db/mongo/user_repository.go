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

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers), now: time.Now}
}

type mongoUser struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty"`
	Username       string               `bson:"username"`
	Email          string               `bson:"email"`
	PasswordHash   string               `bson:"password"`
	Birthdate      *time.Time           `bson:"birthdate,omitempty"`
	FavoriteMovies []primitive.ObjectID `bson:"favorite_movies"`
	CreatedAt      time.Time            `bson:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at"`
}

func (m *mongoUser) toDomain() *domain.User {
	favorites := make([]string, 0, len(m.FavoriteMovies))
	for _, id := range m.FavoriteMovies {
		favorites = append(favorites, id.Hex())
	}
	return &domain.User{
		ID:             m.ID.Hex(),
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Birthdate:      m.Birthdate,
		FavoriteMovies: favorites,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	favorites, err := objectIDs(user.FavoriteMovies)
	if err != nil {
		return nil, err
	}
	doc := mongoUser{
		ID:             primitive.NewObjectID(),
		Username:       user.Username,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		Birthdate:      user.Birthdate,
		FavoriteMovies: favorites,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// FindByID treats an id that is not a valid ObjectID as not found.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, fields domain.UserUpdate) (*domain.User, error) {
	set := bson.M{
		"username":   fields.Username,
		"email":      fields.Email,
		"password":   fields.PasswordHash,
		"updated_at": r.now().UTC(),
	}
	update := bson.M{"$set": set}
	if fields.Birthdate != nil {
		set["birthdate"] = fields.Birthdate
	} else {
		update["$unset"] = bson.M{"birthdate": ""}
	}
	return r.findOneAndUpdate(ctx, id, update)
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// AddFavorite uses $addToSet so a movie is stored at most once.
func (r *UserRepository) AddFavorite(ctx context.Context, id, movieID string) (*domain.User, error) {
	movie, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		return nil, domain.ErrMovieNotFound
	}
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$addToSet": bson.M{"favorite_movies": movie},
		"$set":      bson.M{"updated_at": r.now().UTC()},
	})
}

func (r *UserRepository) RemoveFavorite(ctx context.Context, id, movieID string) (*domain.User, error) {
	movie, err := primitive.ObjectIDFromHex(movieID)
	if err != nil {
		// Nothing stored can match an invalid id.
		return r.FindByID(ctx, id)
	}
	return r.findOneAndUpdate(ctx, id, bson.M{
		"$pull": bson.M{"favorite_movies": movie},
		"$set":  bson.M{"updated_at": r.now().UTC()},
	})
}

func (r *UserRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mu mongoUser
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&mu); err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return mu.toDomain(), nil
}

// EnsureIndexes creates the unique username index that backs duplicate
// detection on registration and rename.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_username"),
	})
	return err
}

func objectIDs(hexes []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		oid, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, fmt.Errorf("favorite %q: %w", h, domain.ErrInvalidInput)
		}
		out = append(out, oid)
	}
	return out, nil
}
