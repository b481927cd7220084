package network

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/travigo/subway/pkg/ctdf"
	"github.com/travigo/subway/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps stations and lines in the global database connection.
type MongoStore struct{}

func (m MongoStore) GetStation(ctx context.Context, stationRef string) (*ctdf.Station, error) {
	var station *ctdf.Station
	err := database.GetCollection(database.StationsCollection).FindOne(ctx, bson.M{"primaryidentifier": stationRef}).Decode(&station)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ctdf.ErrStationNotFound, stationRef)
	} else if err != nil {
		return nil, err
	}

	return station, nil
}

func (m MongoStore) ListStations(ctx context.Context) ([]*ctdf.Station, error) {
	stations := []*ctdf.Station{}

	opts := options.Find().SetSort(bson.D{{Key: "primaryidentifier", Value: 1}})
	cursor, err := database.GetCollection(database.StationsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	if err := cursor.All(ctx, &stations); err != nil {
		return nil, err
	}

	return stations, nil
}

// stationUpsert keeps the creation time of an existing station document.
func stationUpsert(station *ctdf.Station, now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"primaryname":          station.PrimaryName,
			"modificationdatetime": now,
		},
		"$setOnInsert": bson.M{
			"creationdatetime": now,
		},
	}
}

func (m MongoStore) SaveStation(ctx context.Context, station *ctdf.Station) error {
	now := time.Now()

	_, err := database.GetCollection(database.StationsCollection).UpdateOne(
		ctx,
		bson.M{"primaryidentifier": station.PrimaryIdentifier},
		stationUpsert(station, now),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	station.ModificationDateTime = now
	if station.CreationDateTime.IsZero() {
		station.CreationDateTime = now
	}

	return nil
}

func (m MongoStore) GetLine(ctx context.Context, lineRef string) (*ctdf.Line, error) {
	var line *ctdf.Line
	err := database.GetCollection(database.LinesCollection).FindOne(ctx, bson.M{"primaryidentifier": lineRef}).Decode(&line)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", ctdf.ErrLineNotFound, lineRef)
	} else if err != nil {
		return nil, err
	}

	return line, nil
}

func (m MongoStore) ListLines(ctx context.Context) ([]*ctdf.Line, error) {
	lines := []*ctdf.Line{}

	opts := options.Find().SetSort(bson.D{{Key: "primaryidentifier", Value: 1}})
	cursor, err := database.GetCollection(database.LinesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	if err := cursor.All(ctx, &lines); err != nil {
		return nil, err
	}

	return lines, nil
}

func (m MongoStore) InsertLine(ctx context.Context, line *ctdf.Line) error {
	now := time.Now()
	line.CreationDateTime = now
	line.ModificationDateTime = now
	line.Version = 1

	_, err := database.GetCollection(database.LinesCollection).InsertOne(ctx, line)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ctdf.ErrLineExists, line.PrimaryIdentifier)
	}

	return err
}

func (m MongoStore) UpdateLine(ctx context.Context, line *ctdf.Line) error {
	expectedVersion := line.Version

	line.Version++
	line.ModificationDateTime = time.Now()

	collection := database.GetCollection(database.LinesCollection)
	result, err := collection.ReplaceOne(ctx, bson.M{
		"primaryidentifier": line.PrimaryIdentifier,
		"version":           expectedVersion,
	}, line)
	if err != nil {
		line.Version = expectedVersion
		return err
	}

	if result.MatchedCount == 0 {
		line.Version = expectedVersion

		count, err := collection.CountDocuments(ctx, bson.M{"primaryidentifier": line.PrimaryIdentifier})
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: %s", ctdf.ErrLineNotFound, line.PrimaryIdentifier)
		}

		return fmt.Errorf("%w: %s", ctdf.ErrLineConflict, line.PrimaryIdentifier)
	}

	return nil
}

func (m MongoStore) DeleteLine(ctx context.Context, lineRef string) error {
	result, err := database.GetCollection(database.LinesCollection).DeleteOne(ctx, bson.M{"primaryidentifier": lineRef})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", ctdf.ErrLineNotFound, lineRef)
	}

	return nil
}
