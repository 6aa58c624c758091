package assert

import (
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestResponseAssertion(t *testing.T) {
	resp := events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"items":[{"bookId":"B1"}],"count":1,"lastEvaluatedKey":"B1"}`,
	}

	a := Response(t, resp).
		HasStatus(200).
		IsJSON().
		HasItemCount(1).
		HasStringField("lastEvaluatedKey", "B1").
		LacksField("code")

	if a.String("lastEvaluatedKey") != "B1" {
		t.Errorf("Expected B1, got %s", a.String("lastEvaluatedKey"))
	}
	if a.Field("count").(float64) != 1 {
		t.Errorf("Expected count 1, got %v", a.Field("count"))
	}
}

func TestErrorResponseAssertion(t *testing.T) {
	resp := events.APIGatewayProxyResponse{
		StatusCode: 404,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       `{"code":"NOT_FOUND","message":"book not found"}`,
	}

	Response(t, resp).
		HasStatus(404).
		HasErrorCode("NOT_FOUND").
		HasMessage("book not found")
}

func TestItemAssertion(t *testing.T) {
	item := map[string]types.AttributeValue{
		"BookId": &types.AttributeValueMemberS{Value: "B1"},
		"title":  &types.AttributeValueMemberS{Value: "Dune"},
	}

	Item(t, item).
		Exists().
		HasAttribute("BookId", "B1").
		HasAttribute("title", "Dune").
		LacksAttribute("publishedDate")

	Item(t, nil).IsMissing()
}
