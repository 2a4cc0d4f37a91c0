package internal

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wayforpay/config"
	"wayforpay/entity"
	"wayforpay/services"
)

const (
	collectionLog       = "payment_log"
	collectionExchanges = "exchanges"

	exchangesLimit = 100
)

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client, nil
}

func (m *MongoDB) connect(ctx context.Context) (*mongo.Client, error) {
	connection, err := mongo.Connect(ctx, m.clientOptions)
	if err != nil {
		return nil, err
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	err := connection.Disconnect(m.ctx)
	if err != nil {
		log.Println("mongodb disconnect error", err)
	}
}

func (m *MongoDB) WriteLogMessage(data services.Data) error {
	connection, err := m.connect(m.ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionLog)
	_, err = collection.InsertOne(m.ctx, data)
	return err
}

func (m *MongoDB) SaveExchange(ctx context.Context, exchange *entity.Exchange) error {
	connection, err := m.connect(ctx)
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionExchanges)
	if _, err = collection.InsertOne(ctx, exchange); err != nil {
		return fmt.Errorf("insert exchange: %w", err)
	}
	return nil
}

// GetExchanges returns the latest exchanges for an order, newest first.
func (m *MongoDB) GetExchanges(ctx context.Context, orderReference string) ([]*entity.Exchange, error) {
	connection, err := m.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionExchanges)
	filter := bson.D{{Key: "order_reference", Value: orderReference}}
	opt := options.Find().SetSort(bson.D{{Key: "time", Value: -1}}).SetLimit(exchangesLimit)
	cursor, err := collection.Find(ctx, filter, opt)
	if err != nil {
		return nil, err
	}
	var exchanges []*entity.Exchange
	if err = cursor.All(ctx, &exchanges); err != nil {
		return nil, err
	}
	return exchanges, nil
}
