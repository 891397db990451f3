package plan

import (
	"fmt"
)

// classOwner is the first result defining a class name.
type classOwner struct {
	document string
	schemaID string
}

// reportCollisions records an error on every result defining a class name an
// earlier result already defines for a different schema. Generated classes
// share one package, so such names cannot both be emitted. Classes of the
// same schema, e.g. a definition several documents reference, are one type.
func reportCollisions(results []*Result) {
	owners := make(map[string]classOwner)

	for _, r := range results {
		if r == nil {
			continue
		}

		for _, cls := range r.Classes() {
			owner, taken := owners[cls.Name]
			if !taken {
				owners[cls.Name] = classOwner{document: r.Document, schemaID: cls.SchemaID}

				continue
			}

			if owner.document == r.Document || (cls.SchemaID != "" && owner.schemaID == cls.SchemaID) {
				continue
			}

			r.Diagnostics.AddError(CodeClassCollision,
				fmt.Sprintf("type %s is already generated from %s", cls.Name, owner.document),
				r.Document, "")
		}
	}
}
