package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = `You translate questions about urban climate policy into simulation levers for a city digital twin.

Levers:
- carbon_tax: tax on emissions as a fraction between 0 and 1 (a "30% carbon tax" is 0.3)
- public_transport_subsidy: subsidy as a fraction between 0 and 1
- water_price_factor: multiplier on the water tariff ("double" is 2, "+50%" is 1.5)

Set a lever to 0 when the question does not mention it. Never invent levers.
summary restates the proposed policy in one sentence, in the language of the question.

Output strictly in JSON.`

// GenerateSchema generates a strict JSON schema for T.
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

// OpenAIInterpreter asks a chat model for a PolicyBundle using structured output.
type OpenAIInterpreter struct {
	client openai.Client
	model  string
	schema interface{}
}

func NewOpenAIInterpreter(apiKey, model string, opts ...option.RequestOption) (*OpenAIInterpreter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key not set")
	}
	if model == "" {
		model = string(openai.ChatModelGPT4o)
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIInterpreter{
		client: openai.NewClient(opts...),
		model:  model,
		schema: GenerateSchema[PolicyBundle](),
	}, nil
}

func (o *OpenAIInterpreter) Interpret(ctx context.Context, question string) (*PolicyBundle, error) {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "policy_bundle",
		Description: openai.String("Simulation levers extracted from a policy question"),
		Schema:      o.schema,
		Strict:      openai.Bool(true),
	}

	completion, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(question),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Model: openai.ChatModel(o.model),
	})
	if err != nil {
		return nil, fmt.Errorf("error calling OpenAI API: %w", err)
	}
	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		return nil, errors.New("received empty response from OpenAI")
	}

	var bundle PolicyBundle
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &bundle); err != nil {
		return nil, fmt.Errorf("error unmarshalling OpenAI response: %w", err)
	}
	return &bundle, nil
}
