package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/selectshop/shop-api/internal/core/domain"
)

const folderCollection = "folders"

type MongoFolderRepository struct {
	coll *mongo.Collection
}

func NewFolderRepository(db *mongo.Database) *MongoFolderRepository {
	return &MongoFolderRepository{coll: db.Collection(folderCollection)}
}

type mongoFolder struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Owner     string             `bson:"owner"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoFolderRepository) Create(ctx context.Context, folder *domain.Folder) (*domain.Folder, error) {
	doc := mongoFolder{
		Name:      folder.Name,
		Owner:     folder.Owner,
		CreatedAt: folder.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateFolder
		}
		return nil, fmt.Errorf("insert folder: %w", err)
	}

	created := *folder
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoFolderRepository) ListByOwner(ctx context.Context, owner string) ([]domain.Folder, error) {
	cur, err := r.coll.Find(ctx, bson.M{"owner": owner})
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer cur.Close(ctx)

	var folders []domain.Folder
	for cur.Next(ctx) {
		var mf mongoFolder
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode folder: %w", err)
		}
		folders = append(folders, domain.Folder{
			ID:        mf.ID.Hex(),
			Name:      mf.Name,
			Owner:     mf.Owner,
			CreatedAt: unixToTime(mf.CreatedAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}
