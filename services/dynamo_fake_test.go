package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Durjoy96/magiccraft-teammate-finder/models"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoAPI implementation. It understands the
// expression shapes the services actually send: single-equality key
// conditions, SET/ADD update expressions, and `#f <> :f` scan exclusions.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string][]map[string]types.AttributeValue
}

var tableKeys = map[string][2]string{
	models.UserProfilesTable: {"userId", ""},
	models.TeamRequestsTable: {"requestId", ""},
	models.TeamsTable:        {"teamId", ""},
	models.MessagesTable:     {"teamId", "sortKey"},
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: map[string][]map[string]types.AttributeValue{}}
}

func newTestDynamo() (*DynamoService, *fakeDynamo) {
	fake := newFakeDynamo()
	return &DynamoService{Client: fake}, fake
}

// seed marshals v and stores it in the named table.
func (f *fakeDynamo) seed(table string, v interface{}) {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		panic(err)
	}
	f.putLocked(table, item)
}

func (f *fakeDynamo) putLocked(table string, item map[string]types.AttributeValue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pk, sk := tableKeys[table][0], tableKeys[table][1]
	for i, existing := range f.tables[table] {
		if attrString(existing[pk]) == attrString(item[pk]) &&
			(sk == "" || attrString(existing[sk]) == attrString(item[sk])) {
			f.tables[table][i] = item
			return
		}
	}
	f.tables[table] = append(f.tables[table], item)
}

func (f *fakeDynamo) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, item := range f.tables[*params.TableName] {
		if matchesKey(item, params.Key) {
			return &dynamodb.GetItemOutput{Item: item}, nil
		}
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putLocked(*params.TableName, params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := *params.TableName
	for i, item := range f.tables[table] {
		if !matchesKey(item, params.Key) {
			continue
		}
		updated := map[string]types.AttributeValue{}
		for k, v := range item {
			updated[k] = v
		}
		if err := applyUpdateExpression(updated, *params.UpdateExpression, params.ExpressionAttributeValues, params.ExpressionAttributeNames); err != nil {
			return nil, err
		}
		f.tables[table][i] = updated
		return &dynamodb.UpdateItemOutput{Attributes: updated}, nil
	}
	// DynamoDB upserts on update; none of the services rely on that, so a
	// missing item here means a test bug.
	return nil, fmt.Errorf("update on missing item in table %s", table)
}

func (f *fakeDynamo) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	table := *params.TableName

	field, valueRef, err := parseKeyCondition(*params.KeyConditionExpression, params.ExpressionAttributeNames)
	if err != nil {
		return nil, err
	}
	want := attrString(params.ExpressionAttributeValues[valueRef])

	var matched []map[string]types.AttributeValue
	for _, item := range f.tables[table] {
		if attrString(item[field]) == want {
			matched = append(matched, item)
		}
	}

	if sk := tableKeys[table][1]; sk != "" {
		ascending := params.ScanIndexForward == nil || *params.ScanIndexForward
		sort.Slice(matched, func(i, j int) bool {
			if ascending {
				return attrString(matched[i][sk]) < attrString(matched[j][sk])
			}
			return attrString(matched[i][sk]) > attrString(matched[j][sk])
		})
	}

	if params.Limit != nil && int(*params.Limit) < len(matched) {
		matched = matched[:*params.Limit]
	}
	return &dynamodb.QueryOutput{Items: matched}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []map[string]types.AttributeValue
	for _, item := range f.tables[*params.TableName] {
		if excludedByFilter(item, params.FilterExpression, params.ExpressionAttributeNames, params.ExpressionAttributeValues) {
			continue
		}
		out = append(out, item)
	}
	return &dynamodb.ScanOutput{Items: out}, nil
}

func matchesKey(item, key map[string]types.AttributeValue) bool {
	for k, v := range key {
		if attrString(item[k]) != attrString(v) {
			return false
		}
	}
	return true
}

func attrString(v types.AttributeValue) string {
	switch t := v.(type) {
	case *types.AttributeValueMemberS:
		return t.Value
	case *types.AttributeValueMemberN:
		return t.Value
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// parseKeyCondition handles the single-equality form `field = :ref`.
func parseKeyCondition(expr string, names map[string]string) (field, valueRef string, err error) {
	parts := strings.SplitN(expr, "=", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("unsupported key condition %q", expr)
	}
	field = strings.TrimSpace(parts[0])
	if strings.HasPrefix(field, "#") {
		field = names[field]
	}
	return field, strings.TrimSpace(parts[1]), nil
}

// applyUpdateExpression supports `SET a = :x, b = :y` and `ADD f :n, g :m`
// in either order, with optional #name substitution.
func applyUpdateExpression(item map[string]types.AttributeValue, expr string, values map[string]types.AttributeValue, names map[string]string) error {
	resolve := func(field string) string {
		if strings.HasPrefix(field, "#") {
			return names[field]
		}
		return field
	}

	setPart, addPart := "", ""
	if i := strings.Index(expr, "ADD "); i >= 0 {
		addPart = strings.TrimSpace(expr[i+4:])
		expr = strings.TrimSpace(expr[:i])
	}
	if strings.HasPrefix(expr, "SET ") {
		setPart = strings.TrimSpace(expr[4:])
	} else if expr != "" {
		return fmt.Errorf("unsupported update expression %q", expr)
	}

	if setPart != "" {
		for _, clause := range strings.Split(setPart, ",") {
			parts := strings.SplitN(clause, "=", 2)
			if len(parts) != 2 {
				return fmt.Errorf("unsupported SET clause %q", clause)
			}
			field := resolve(strings.TrimSpace(parts[0]))
			ref := strings.TrimSpace(parts[1])
			item[field] = values[ref]
		}
	}

	for _, clause := range strings.Split(addPart, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		fields := strings.Fields(clause)
		if len(fields) != 2 {
			return fmt.Errorf("unsupported ADD clause %q", clause)
		}
		field := resolve(fields[0])
		delta, err := strconv.Atoi(attrString(values[fields[1]]))
		if err != nil {
			return fmt.Errorf("non-numeric ADD value for %s: %w", field, err)
		}
		current := 0
		if existing, ok := item[field]; ok {
			current, _ = strconv.Atoi(attrString(existing))
		}
		item[field] = &types.AttributeValueMemberN{Value: strconv.Itoa(current + delta)}
	}
	return nil
}

// excludedByFilter evaluates `#f <> :f AND ...` exclusion filters.
func excludedByFilter(item map[string]types.AttributeValue, filter *string, names map[string]string, values map[string]types.AttributeValue) bool {
	if filter == nil {
		return false
	}
	for _, clause := range strings.Split(*filter, " AND ") {
		parts := strings.SplitN(clause, "<>", 2)
		if len(parts) != 2 {
			continue
		}
		field := names[strings.TrimSpace(parts[0])]
		ref := strings.TrimSpace(parts[1])
		if attrString(item[field]) == attrString(values[ref]) {
			return true
		}
	}
	return false
}
