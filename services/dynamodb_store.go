package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/lukenewport-prog/nptgpt/models"
)

// DynamoStore persists each conversation as a single item keyed by the
// conversation id, with the full history serialized into one attribute so
// that Save stays an atomic whole-history replace.
type DynamoStore struct {
	db    *dynamodb.Client
	table string
}

type DynamoOptions struct {
	// Endpoint overrides the AWS endpoint, e.g. http://localhost:8000 for
	// dynamodb-local. When set, static dummy credentials are used.
	Endpoint string
	Region   string
	Table    string
}

func NewDynamoStore(ctx context.Context, opts DynamoOptions) (*DynamoStore, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.Endpoint != "" {
		customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{URL: opts.Endpoint}, nil
		})
		loadOpts = append(loadOpts,
			awsconfig.WithEndpointResolverWithOptions(customResolver),
			awsconfig.WithCredentialsProvider(credentials.StaticCredentialsProvider{
				Value: aws.Credentials{
					AccessKeyID: "dummy", SecretAccessKey: "dummy", SessionToken: "dummy",
				},
			}),
		)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s := &DynamoStore{db: dynamodb.NewFromConfig(cfg), table: opts.Table}
	s.ensureTableExists(ctx)
	return s, nil
}

func (s *DynamoStore) ensureTableExists(ctx context.Context) {
	_, err := s.db.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(s.table),
		AttributeDefinitions: []types.AttributeDefinition{
			{
				AttributeName: aws.String("ID"),
				AttributeType: types.ScalarAttributeTypeS,
			},
		},
		KeySchema: []types.KeySchemaElement{
			{
				AttributeName: aws.String("ID"),
				KeyType:       types.KeyTypeHash,
			},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		log.Printf("Table might already exist: %v", err)
	}
}

func (s *DynamoStore) Resolve(ctx context.Context, id string) (string, []models.Message, error) {
	if id == "" {
		return "", NewHistory(), nil
	}

	result, err := s.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"ID": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return "", nil, fmt.Errorf("get conversation %s: %w", id, err)
	}
	if result.Item == nil {
		return id, NewHistory(), nil
	}

	raw, ok := result.Item["History"].(*types.AttributeValueMemberS)
	if !ok {
		return id, NewHistory(), nil
	}
	var history []models.Message
	if err := json.Unmarshal([]byte(raw.Value), &history); err != nil {
		return "", nil, fmt.Errorf("decode conversation %s: %w", id, err)
	}
	return id, history, nil
}

func (s *DynamoStore) Save(ctx context.Context, id string, history []models.Message) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode conversation %s: %w", id, err)
	}

	_, err = s.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"ID":        &types.AttributeValueMemberS{Value: id},
			"History":   &types.AttributeValueMemberS{Value: string(raw)},
			"UpdatedAt": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
	})
	if err != nil {
		return fmt.Errorf("save conversation %s: %w", id, err)
	}
	return nil
}
