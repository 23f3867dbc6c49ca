package repository

import (
	"context"
	"time"

	"clinic_review/internal/domain/entities"
	"clinic_review/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultAuditTableName = "submission_audit"
	auditCaseKeyIndex     = "case_key-index"
)

type submissionAuditItem struct {
	ID         string `dynamodbav:"id"`
	CaseKey    string `dynamodbav:"case_key"`
	CaseName   string `dynamodbav:"case_name"`
	CaseDate   string `dynamodbav:"case_date"`
	Stage      string `dynamodbav:"stage"`
	Actor      string `dynamodbav:"actor"`
	Total      int    `dynamodbav:"total"`
	Max        int    `dynamodbav:"max"`
	Status     string `dynamodbav:"status"`
	RecordedAt string `dynamodbav:"recorded_at"`
}

// AuditDynamoRepository persists SubmissionAudit entries in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: case_key-index (PK: case_key)

type AuditDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IAuditRepository = (*AuditDynamoRepository)(nil)

func NewAuditDynamoRepository(ddb *dynamodb.Client) *AuditDynamoRepository {
	return &AuditDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("AUDIT_TABLE", defaultAuditTableName),
	}
}

func (r *AuditDynamoRepository) Record(ctx context.Context, a entities.SubmissionAudit) (entities.SubmissionAudit, error) {
	it := toSubmissionAuditItem(a)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.SubmissionAudit{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.SubmissionAudit{}, err
	}
	return a, nil
}

func (r *AuditDynamoRepository) ListByCase(ctx context.Context, name, date string) ([]entities.SubmissionAudit, error) {
	key := entities.SubmissionAudit{CaseName: name, CaseDate: date}.CaseKey()

	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(auditCaseKeyIndex),
		KeyConditionExpression: aws.String("case_key = :ck"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ck": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, err
	}

	entries := make([]entities.SubmissionAudit, 0, len(out.Items))
	for _, raw := range out.Items {
		var it submissionAuditItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		entries = append(entries, fromSubmissionAuditItem(it))
	}
	return entries, nil
}

func toSubmissionAuditItem(a entities.SubmissionAudit) submissionAuditItem {
	return submissionAuditItem{
		ID:         a.ID,
		CaseKey:    a.CaseKey(),
		CaseName:   a.CaseName,
		CaseDate:   a.CaseDate,
		Stage:      string(a.Stage),
		Actor:      a.Actor,
		Total:      a.Total,
		Max:        a.Max,
		Status:     string(a.Status),
		RecordedAt: a.RecordedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromSubmissionAuditItem(it submissionAuditItem) entities.SubmissionAudit {
	recordedAt, _ := time.Parse(time.RFC3339Nano, it.RecordedAt)
	return entities.SubmissionAudit{
		ID:         it.ID,
		CaseName:   it.CaseName,
		CaseDate:   it.CaseDate,
		Stage:      entities.Stage(it.Stage),
		Actor:      it.Actor,
		Total:      it.Total,
		Max:        it.Max,
		Status:     entities.CaseStatus(it.Status),
		RecordedAt: recordedAt,
	}
}
