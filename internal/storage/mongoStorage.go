package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	appErrors "github.com/fatali-fataliyev/event_finance/customErrors"
	"github.com/fatali-fataliyev/event_finance/internal/config"
	"github.com/fatali-fataliyev/event_finance/internal/finance"
	"github.com/fatali-fataliyev/event_finance/logging"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	fundraisingCollection  = "fundraising"
	budgetsCollection      = "budgets"
	expendituresCollection = "expenditures"
	donationsCollection    = "donations"
)

// MongoStorage keeps one document per budget (categories and items embedded), one per
// fundraising record, and one per expenditure and donation.
type MongoStorage struct {
	client *mongo.Client
	db     *mongo.Database
}

func InitMongo(ctx context.Context, cfg config.MongoConfig) (*MongoStorage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	logging.Logger.Info("Connecting to MongoDB...")
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo is unreachable: %w", err)
	}
	logging.Logger.Info("Connected to MongoDB successfully")

	return NewMongoStorage(client, cfg.Database), nil
}

func NewMongoStorage(client *mongo.Client, database string) *MongoStorage {
	return &MongoStorage{client: client, db: client.Database(database)}
}

func (m *MongoStorage) GetStorageType() string {
	return "mongo"
}

func (m *MongoStorage) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoStorage) col(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *MongoStorage) replace(ctx context.Context, collection string, id string, doc any) error {
	_, err := m.col(collection).ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

// ---- FUNDRAISING ---- //

func (m *MongoStorage) SaveFundraising(ctx context.Context, f finance.EventFundraising) error {
	if err := m.replace(ctx, fundraisingCollection, f.EventID, newDocFundraising(f)); err != nil {
		return unavailable(ctx, "SaveFundraising", "save fundraising", err)
	}
	return nil
}

func (m *MongoStorage) GetFundraising(ctx context.Context, eventID string) (finance.EventFundraising, error) {
	var doc docFundraising
	if err := m.col(fundraisingCollection).FindOne(ctx, bson.M{"_id": eventID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return finance.EventFundraising{}, appErrors.New(appErrors.ErrNotFound, "fundraising for event '%s' not found", eventID)
		}
		return finance.EventFundraising{}, unavailable(ctx, "GetFundraising", "get fundraising", err)
	}
	f, err := doc.toModel()
	if err != nil {
		return finance.EventFundraising{}, corrupted(ctx, "GetFundraising", err)
	}
	return f, nil
}

// RecordDonation inserts the donation before replacing the totals. A failure between the two
// writes leaves a donation that is not yet counted.
// TODO: wrap both writes in a session transaction once deployments run Mongo as a replica set.
func (m *MongoStorage) RecordDonation(ctx context.Context, d finance.DonationRecord, f finance.EventFundraising) error {
	if _, err := m.col(donationsCollection).InsertOne(ctx, newDocDonation(d)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return appErrors.New(appErrors.ErrConflict, "donation '%s' already recorded", d.ID)
		}
		return unavailable(ctx, "RecordDonation", "save donation", err)
	}
	if err := m.replace(ctx, fundraisingCollection, f.EventID, newDocFundraising(f)); err != nil {
		return unavailable(ctx, "RecordDonation", "save fundraising", err)
	}
	return nil
}

func (m *MongoStorage) GetDonations(ctx context.Context, eventID string) ([]finance.DonationRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "received_at", Value: 1}})
	cursor, err := m.col(donationsCollection).Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, unavailable(ctx, "GetDonations", "get donations", err)
	}

	var docs []docDonation
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, unavailable(ctx, "GetDonations", "decode donations", err)
	}

	donations := []finance.DonationRecord{}
	for _, doc := range docs {
		d, err := doc.toModel()
		if err != nil {
			return nil, corrupted(ctx, "GetDonations", err)
		}
		donations = append(donations, d)
	}
	return donations, nil
}

// ---- BUDGET ---- //

func (m *MongoStorage) SaveBudget(ctx context.Context, b finance.EventBudget) error {
	if err := m.replace(ctx, budgetsCollection, b.EventID, newDocBudget(b)); err != nil {
		return unavailable(ctx, "SaveBudget", "save budget", err)
	}
	return nil
}

func (m *MongoStorage) GetBudget(ctx context.Context, eventID string) (finance.EventBudget, error) {
	var doc docBudget
	if err := m.col(budgetsCollection).FindOne(ctx, bson.M{"_id": eventID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return finance.EventBudget{}, appErrors.New(appErrors.ErrNotFound, "budget for event '%s' not found", eventID)
		}
		return finance.EventBudget{}, unavailable(ctx, "GetBudget", "get budget", err)
	}
	b, err := doc.toModel()
	if err != nil {
		return finance.EventBudget{}, corrupted(ctx, "GetBudget", err)
	}
	return b, nil
}

// ---- EXPENDITURES ---- //

func (m *MongoStorage) SaveExpenditure(ctx context.Context, e finance.EventExpenditure) error {
	if err := m.replace(ctx, expendituresCollection, e.ID, newDocExpenditure(e)); err != nil {
		return unavailable(ctx, "SaveExpenditure", "save expenditure", err)
	}
	return nil
}

func (m *MongoStorage) GetExpenditure(ctx context.Context, eventID string, expenditureID string) (finance.EventExpenditure, error) {
	var doc docExpenditure
	err := m.col(expendituresCollection).FindOne(ctx, bson.M{"_id": expenditureID, "event_id": eventID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return finance.EventExpenditure{}, appErrors.New(appErrors.ErrNotFound, "expenditure '%s' not found", expenditureID)
		}
		return finance.EventExpenditure{}, unavailable(ctx, "GetExpenditure", "get expenditure", err)
	}
	e, err := doc.toModel()
	if err != nil {
		return finance.EventExpenditure{}, corrupted(ctx, "GetExpenditure", err)
	}
	return e, nil
}

func (m *MongoStorage) GetExpenditures(ctx context.Context, eventID string) ([]finance.EventExpenditure, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := m.col(expendituresCollection).Find(ctx, bson.M{"event_id": eventID}, opts)
	if err != nil {
		return nil, unavailable(ctx, "GetExpenditures", "get expenditures", err)
	}

	var docs []docExpenditure
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, unavailable(ctx, "GetExpenditures", "decode expenditures", err)
	}

	expenditures := []finance.EventExpenditure{}
	for _, doc := range docs {
		e, err := doc.toModel()
		if err != nil {
			return nil, corrupted(ctx, "GetExpenditures", err)
		}
		expenditures = append(expenditures, e)
	}
	return expenditures, nil
}

// ---- EVENT ---- //

func (m *MongoStorage) DeleteEventFinances(ctx context.Context, eventID string) error {
	if _, err := m.col(fundraisingCollection).DeleteOne(ctx, bson.M{"_id": eventID}); err != nil {
		return unavailable(ctx, "DeleteEventFinances", "delete fundraising", err)
	}
	if _, err := m.col(budgetsCollection).DeleteOne(ctx, bson.M{"_id": eventID}); err != nil {
		return unavailable(ctx, "DeleteEventFinances", "delete budget", err)
	}
	if _, err := m.col(expendituresCollection).DeleteMany(ctx, bson.M{"event_id": eventID}); err != nil {
		return unavailable(ctx, "DeleteEventFinances", "delete expenditures", err)
	}
	if _, err := m.col(donationsCollection).DeleteMany(ctx, bson.M{"event_id": eventID}); err != nil {
		return unavailable(ctx, "DeleteEventFinances", "delete donations", err)
	}
	return nil
}
