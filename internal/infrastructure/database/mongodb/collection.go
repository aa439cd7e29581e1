package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// EnsureReviewQueueCollection crée la collection de la file de revue humaine
// avec son schéma de validation et ses index
func (cm *CollectionManager) EnsureReviewQueueCollection(ctx context.Context, name string) error {
	exists, err := cm.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	// Schéma de validation des candidats en attente de revue
	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"run_id", "status", "candidate", "created_at"},
			"properties": bson.M{
				"run_id": bson.M{
					"bsonType":    "string",
					"description": "Identifiant de l'exécution de migration",
				},
				"status": bson.M{
					"bsonType":    "string",
					"description": "État de la revue (pending, resolved)",
				},
				"candidate": bson.M{
					"bsonType":    "object",
					"description": "Cluster de doublons probables avec score et facteurs",
				},
				"created_at": bson.M{
					"bsonType":    "date",
					"description": "Date de mise en file",
				},
			},
		},
	}

	opts := options.CreateCollection().SetValidator(validator)

	if err := cm.client.CreateCollection(ctx, name, opts); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}

	// Index pour les lectures de la file (statut) et l'audit par exécution
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "run_id", Value: 1}},
		},
	}

	return cm.client.CreateIndexes(ctx, name, indexes)
}

// EnsureReportsCollection crée la collection des rapports d'exécution
// avec un index unique sur run_id
func (cm *CollectionManager) EnsureReportsCollection(ctx context.Context, name string) error {
	exists, err := cm.CollectionExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	validator := bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": []string{"run_id", "started_at", "finished_at"},
			"properties": bson.M{
				"run_id": bson.M{
					"bsonType":    "string",
					"description": "Identifiant de l'exécution de migration",
				},
				"provenance_checksum": bson.M{
					"bsonType":    "string",
					"description": "Empreinte SHA-512 des identifiants legacy fusionnés",
				},
				"started_at": bson.M{
					"bsonType":    "date",
					"description": "Début de l'exécution",
				},
				"finished_at": bson.M{
					"bsonType":    "date",
					"description": "Fin de l'exécution",
				},
			},
		},
	}

	opts := options.CreateCollection().SetValidator(validator)

	if err := cm.client.CreateCollection(ctx, name, opts); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}

	return cm.client.CreateIndex(ctx, name,
		bson.D{{Key: "run_id", Value: 1}},
		options.Index().SetUnique(true))
}

func (cm *CollectionManager) ListCollections(ctx context.Context) ([]string, error) {
	return cm.client.ListCollectionNames(ctx)
}

func (cm *CollectionManager) CollectionExists(ctx context.Context, name string) (bool, error) {
	collections, err := cm.client.ListCollectionNames(ctx)
	if err != nil {
		return false, err
	}

	for _, coll := range collections {
		if coll == name {
			return true, nil
		}
	}
	return false, nil
}

func (cm *CollectionManager) DropCollection(ctx context.Context, name string) error {
	return cm.client.DropCollection(ctx, name)
}
