package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/calllog"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CallLogCollection is the collection holding call log documents.
const CallLogCollection = "call_logs"

type callLogDocument struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty"`
	EmployeeID           string               `bson:"employeeId"`
	CallDirection        string               `bson:"callDirection"`
	ReasonForCall        string               `bson:"reasonForCall"`
	TypeOfCall           string               `bson:"typeOfCall"`
	CallCategory         *string              `bson:"callCategory,omitempty"`
	CallDescription      string               `bson:"callDescription"`
	WasSaleConverted     string               `bson:"wasSaleConverted"`
	SaleConvertedThrough *string              `bson:"saleConvertedThrough,omitempty"`
	ProfitAmount         primitive.Decimal128 `bson:"profitAmount"`
	ChargebackRefund     primitive.Decimal128 `bson:"chargebackRefund"`
	NetProfit            primitive.Decimal128 `bson:"netProfit"`
	ReasonForNoSale      string               `bson:"reasonForNoSale"`
	CustomerName         string               `bson:"customerName"`
	CustomerEmail        string               `bson:"customerEmail"`
	CustomerPhone        string               `bson:"customerPhone"`
	Language             string               `bson:"language"`
	CreatedAt            time.Time            `bson:"createdAt"`
	UpdatedAt            time.Time            `bson:"updatedAt"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	parsed, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return parsed
}

func newCallLogDocument(l calllog.CallLog) (callLogDocument, error) {
	profit, err := toDecimal128(l.ProfitAmount)
	if err != nil {
		return callLogDocument{}, fmt.Errorf("invalid profit amount: %w", err)
	}
	chargeback, err := toDecimal128(l.ChargebackRefund)
	if err != nil {
		return callLogDocument{}, fmt.Errorf("invalid chargeback refund: %w", err)
	}
	net, err := toDecimal128(l.NetProfit)
	if err != nil {
		return callLogDocument{}, fmt.Errorf("invalid net profit: %w", err)
	}

	return callLogDocument{
		EmployeeID:           l.EmployeeID,
		CallDirection:        l.CallDirection,
		ReasonForCall:        l.ReasonForCall,
		TypeOfCall:           l.TypeOfCall,
		CallCategory:         l.CallCategory,
		CallDescription:      l.CallDescription,
		WasSaleConverted:     l.WasSaleConverted,
		SaleConvertedThrough: l.SaleConvertedThrough,
		ProfitAmount:         profit,
		ChargebackRefund:     chargeback,
		NetProfit:            net,
		ReasonForNoSale:      l.ReasonForNoSale,
		CustomerName:         l.CustomerName,
		CustomerEmail:        l.CustomerEmail,
		CustomerPhone:        l.CustomerPhone,
		Language:             l.Language,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}, nil
}

func (d callLogDocument) toEntity() calllog.CallLog {
	return calllog.CallLog{
		ID:                   d.ID.Hex(),
		EmployeeID:           d.EmployeeID,
		CallDirection:        d.CallDirection,
		ReasonForCall:        d.ReasonForCall,
		TypeOfCall:           d.TypeOfCall,
		CallCategory:         d.CallCategory,
		CallDescription:      d.CallDescription,
		WasSaleConverted:     d.WasSaleConverted,
		SaleConvertedThrough: d.SaleConvertedThrough,
		ProfitAmount:         fromDecimal128(d.ProfitAmount),
		ChargebackRefund:     fromDecimal128(d.ChargebackRefund),
		NetProfit:            fromDecimal128(d.NetProfit),
		ReasonForNoSale:      d.ReasonForNoSale,
		CustomerName:         d.CustomerName,
		CustomerEmail:        d.CustomerEmail,
		CustomerPhone:        d.CustomerPhone,
		Language:             d.Language,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

type callLogRepository struct {
	collection *mongo.Collection
}

func NewCallLogRepository(m *database.Mongo) calllog.CallLogRepository {
	return &callLogRepository{collection: m.Collection(CallLogCollection)}
}

// EnsureIndexes creates the indexes used by per-employee and windowed queries.
func EnsureIndexes(ctx context.Context, m *database.Mongo) error {
	_, err := m.Collection(CallLogCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "employeeId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create call log indexes: %w", err)
	}
	return nil
}

// Create implements calllog.CallLogRepository.
func (r *callLogRepository) Create(ctx context.Context, l calllog.CallLog) (calllog.CallLog, error) {
	doc, err := newCallLogDocument(l)
	if err != nil {
		return calllog.CallLog{}, err
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return calllog.CallLog{}, fmt.Errorf("failed to create call log: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}
	return doc.toEntity(), nil
}

func (r *callLogRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]calllog.CallLog, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find call logs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []callLogDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode call logs: %w", err)
	}

	logs := make([]calllog.CallLog, 0, len(docs))
	for _, d := range docs {
		logs = append(logs, d.toEntity())
	}
	return logs, nil
}

// List implements calllog.CallLogRepository.
func (r *callLogRepository) List(ctx context.Context, page, limit int) ([]calllog.CallLog, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count call logs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	logs, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// ListByEmployee implements calllog.CallLogRepository.
func (r *callLogRepository) ListByEmployee(ctx context.Context, employeeID string) ([]calllog.CallLog, error) {
	return r.find(ctx, bson.M{"employeeId": employeeID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

// ListByEmployeeBetween implements calllog.CallLogRepository.
func (r *callLogRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from, to time.Time) ([]calllog.CallLog, error) {
	filter := bson.M{
		"employeeId": employeeID,
		"createdAt":  bson.M{"$gte": from, "$lte": to},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
}

type summaryFacet struct {
	Totals []struct {
		Calls  int64                `bson:"calls"`
		Sales  int64                `bson:"sales"`
		Profit primitive.Decimal128 `bson:"profit"`
	} `bson:"totals"`
	Categories []bucketDocument `bson:"categories"`
	Directions []bucketDocument `bson:"directions"`
	Channels   []bucketDocument `bson:"channels"`
}

type bucketDocument struct {
	Name  *string `bson:"_id"`
	Count int64   `bson:"count"`
}

func toBuckets(docs []bucketDocument) []calllog.CountBucket {
	buckets := make([]calllog.CountBucket, 0, len(docs))
	for _, d := range docs {
		name := ""
		if d.Name != nil {
			name = *d.Name
		}
		buckets = append(buckets, calllog.CountBucket{Name: name, Count: d.Count})
	}
	return buckets
}

// Summary implements calllog.CallLogRepository.
func (r *callLogRepository) Summary(ctx context.Context, from, to *time.Time) (calllog.Summary, error) {
	match := bson.M{}
	if from != nil || to != nil {
		window := bson.M{}
		if from != nil {
			window["$gte"] = *from
		}
		if to != nil {
			window["$lte"] = *to
		}
		match["createdAt"] = window
	}

	isSale := bson.D{{Key: "$eq", Value: bson.A{"$wasSaleConverted", calllog.SaleYes}}}
	countBy := func(field string) bson.D {
		return bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}}
	}
	byCount := bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$facet", Value: bson.D{
			{Key: "totals", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{
					{Key: "_id", Value: nil},
					{Key: "calls", Value: bson.D{{Key: "$sum", Value: 1}}},
					{Key: "sales", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{isSale, 1, 0}}}}}},
					{Key: "profit", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$cond", Value: bson.A{isSale, "$profitAmount", 0}}}}}},
				}}},
				bson.D{{Key: "$project", Value: bson.D{
					{Key: "calls", Value: 1},
					{Key: "sales", Value: 1},
					{Key: "profit", Value: bson.D{{Key: "$toDecimal", Value: "$profit"}}},
				}}},
			}},
			{Key: "categories", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.M{
					"typeOfCall":   calllog.TypeSalesInquiry,
					"callCategory": bson.M{"$nin": bson.A{nil, ""}},
				}}},
				countBy("callCategory"),
				byCount,
			}},
			{Key: "directions", Value: bson.A{countBy("callDirection"), byCount}},
			{Key: "channels", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.M{"wasSaleConverted": calllog.SaleYes}}},
				countBy("saleConvertedThrough"),
				byCount,
			}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return calllog.Summary{}, fmt.Errorf("failed to aggregate call log summary: %w", err)
	}
	defer cursor.Close(ctx)

	var facets []summaryFacet
	if err := cursor.All(ctx, &facets); err != nil {
		return calllog.Summary{}, fmt.Errorf("failed to decode call log summary: %w", err)
	}

	summary := calllog.Summary{
		TotalProfit:               decimal.Zero,
		TopCallCategories:         []calllog.CountBucket{},
		CallDirectionStats:        []calllog.CountBucket{},
		SaleConvertedThroughStats: []calllog.CountBucket{},
	}
	if len(facets) == 0 {
		return summary, nil
	}

	f := facets[0]
	if len(f.Totals) > 0 {
		summary.TotalCalls = f.Totals[0].Calls
		summary.TotalSales = f.Totals[0].Sales
		summary.TotalProfit = fromDecimal128(f.Totals[0].Profit)
	}
	summary.TopCallCategories = toBuckets(f.Categories)
	summary.CallDirectionStats = toBuckets(f.Directions)
	summary.SaleConvertedThroughStats = toBuckets(f.Channels)
	return summary, nil
}
