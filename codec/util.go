package codec

import (
	"github.com/hashicorp/go-uuid"
)

const hclFileExtension = ".hcl"

// fragmentName creates a synthetic filename for source fragments that
// have no backing file, so ranges from concurrent parses stay apart.
func fragmentName() string {
	id, err := uuid.GenerateUUID()
	if err != nil {
		return "fragment" + hclFileExtension
	}
	return "fragment-" + id[:8] + hclFileExtension
}
