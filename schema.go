package gripcontrol

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/hold-instruction.json
var holdInstructionSchema string

// HoldInstructionSchema returns the JSON schema that ValidateInstruction
// checks documents against.
func HoldInstructionSchema() string {
	return holdInstructionSchema
}

// ValidateInstruction checks that document is a hold instruction a GRIP
// proxy will accept. Schema violations are reported as ErrInvalidInstruction.
func ValidateInstruction(document []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(holdInstructionSchema),
		gojsonschema.NewBytesLoader(document),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstruction, err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidInstruction, strings.Join(problems, "; "))
}
