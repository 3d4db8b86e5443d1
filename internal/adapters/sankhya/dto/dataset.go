package dto

import (
	"encoding/json"
	"fmt"
)

// LoadRequest is the CRUDServiceProvider.loadRecords request body.
type LoadRequest struct {
	DataSet DataSet `json:"dataSet"`
}

type DataSet struct {
	RootEntity                string     `json:"rootEntity"`
	IncludePresentationFields string     `json:"includePresentationFields"`
	TryJoinedFields           string     `json:"tryJoinedFields,omitempty"`
	OffsetPage                string     `json:"offsetPage"`
	Criteria                  Criteria   `json:"criteria"`
	Entity                    EntitySpec `json:"entity"`
}

type Criteria struct {
	Expression Field `json:"expression"`
}

type EntitySpec struct {
	Fieldset Fieldset `json:"fieldset"`
}

type Fieldset struct {
	List string `json:"list"`
}

// NewLoadRequest builds a loadRecords body for one entity, a criteria
// expression and a comma-separated field list.
func NewLoadRequest(rootEntity, expression, fields string) LoadRequest {
	return LoadRequest{
		DataSet: DataSet{
			RootEntity:                rootEntity,
			IncludePresentationFields: "N",
			OffsetPage:                "0",
			Criteria:                  Criteria{Expression: Field{Value: expression}},
			Entity:                    EntitySpec{Fieldset: Fieldset{List: fields}},
		},
	}
}

// LoadResponse decodes the responseBody of loadRecords.
type LoadResponse struct {
	Entities Entities `json:"entities"`
}

// Entities normalizes the gateway quirk of returning "entity" as a
// single object when there is one match and an array otherwise.
type Entities struct {
	Total  string
	Entity []Record
}

func (e *Entities) UnmarshalJSON(data []byte) error {
	var aux struct {
		Total  string          `json:"total"`
		Entity json.RawMessage `json:"entity"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Total = aux.Total
	e.Entity = nil

	if len(aux.Entity) == 0 {
		return nil
	}
	switch aux.Entity[0] {
	case '[':
		return json.Unmarshal(aux.Entity, &e.Entity)
	case '{':
		var one Record
		if err := json.Unmarshal(aux.Entity, &one); err != nil {
			return err
		}
		e.Entity = []Record{one}
		return nil
	case 'n': // null
		return nil
	default:
		return fmt.Errorf("unexpected entity payload: %s", aux.Entity)
	}
}

// Record is one loadRecords row: positional fields keyed f0, f1, ...
type Record map[string]Field

// F returns the value of the i-th projected field.
func (r Record) F(i int) string {
	return r[fmt.Sprintf("f%d", i)].Value
}

// SaveRequest is the DatasetSP.save request body.
type SaveRequest struct {
	EntityName string       `json:"entityName"`
	Fields     []string     `json:"fields"`
	Records    []SaveRecord `json:"records"`
}

type SaveRecord struct {
	PK     map[string]string `json:"pk,omitempty"`
	Values map[string]any    `json:"values"`
}

// QueryRequest is the DbExplorerSP.executeQuery request body.
type QueryRequest struct {
	SQL string `json:"sql"`
}

// QueryResponse decodes the responseBody of executeQuery.
type QueryResponse struct {
	Rows [][]any `json:"rows"`
}
