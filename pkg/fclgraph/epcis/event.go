package epcis

import "fmt"

// Kind identifies one of the five EPCIS event types.
type Kind string

const (
	KindObject         Kind = "ObjectEvent"
	KindAggregation    Kind = "AggregationEvent"
	KindAssociation    Kind = "AssociationEvent"
	KindTransaction    Kind = "TransactionEvent"
	KindTransformation Kind = "TransformationEvent"
)

// Action says how an event relates to the lifecycle of the entity being
// described. See section 7.3.2 of the EPCIS standard.
type Action string

const (
	// ActionAdd - the entity has been created or added to.
	ActionAdd Action = "ADD"
	// ActionObserve - the entity has not been changed.
	ActionObserve Action = "OBSERVE"
	// ActionDelete - the entity has been removed from or destroyed.
	ActionDelete Action = "DELETE"
)

// QuantityElement identifies a class-level object population, as outlined
// in section 7.3.3.3 of the standard.
type QuantityElement struct {
	EPCClass string
	Quantity float64
	UOM      string
}

// BusinessTransaction records an event's participation in a particular
// business transaction, e.g. a specific purchase order.
type BusinessTransaction struct {
	Type           string
	BizTransaction string
}

// Source provides business context about the originating endpoint of a
// business transfer.
type Source struct {
	Type   string
	Source string
}

// Destination provides business context about the terminating endpoint of
// a business transfer.
type Destination struct {
	Type        string
	Destination string
}

// Extension is one namespaced attribute on an event. Content is either a
// scalar string or a []string, matching the JSON payload shapes the wire
// format allows.
type Extension struct {
	Namespace string
	Key       string
	Content   any
}

// Name returns the full namespace-qualified attribute name.
func (e Extension) Name() string {
	return e.Namespace + ":" + e.Key
}

// Values returns the extension content as a string slice. Scalar content
// becomes a single-element slice; any other payload shape yields nil.
func (e Extension) Values() []string {
	switch v := e.Content.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil
			}
			values = append(values, s)
		}
		return values
	}
	return nil
}

// Event is a single EPCIS event of any kind. Fields that only apply to
// some kinds are zero-valued on the others.
type Event struct {
	ID             string
	Kind           Kind
	Action         Action
	EventTime      string
	TimeZoneOffset string
	RecordTime     string

	BizStep     string
	Disposition string
	ReadPoint   string
	BizLocation string

	EPCList      []string
	QuantityList []QuantityElement

	// Aggregation / Association / Transaction.
	ParentID          string
	ChildEPCs         []string
	ChildQuantityList []QuantityElement

	// Transformation.
	InputEPCList       []string
	InputQuantityList  []QuantityElement
	OutputEPCList      []string
	OutputQuantityList []QuantityElement
	TransformationID   string

	SourceList      []Source
	DestinationList []Destination
	BizTransactions []BusinessTransaction

	// Extensions holds namespaced attributes in declaration order.
	Extensions []Extension
}

// Extension returns the extension with the given namespace-qualified name
// and whether it exists.
func (e *Event) Extension(name string) (Extension, bool) {
	for _, ext := range e.Extensions {
		if ext.Name() == name {
			return ext, true
		}
	}
	return Extension{}, false
}

// AddExtension appends a namespaced attribute, replacing any previous
// extension with the same name.
func (e *Event) AddExtension(namespace, key string, content any) {
	ext := Extension{Namespace: namespace, Key: key, Content: content}
	for i, existing := range e.Extensions {
		if existing.Name() == ext.Name() {
			e.Extensions[i] = ext
			return
		}
	}
	e.Extensions = append(e.Extensions, ext)
}

// PredecessorIDs resolves the tracking extension carrying the ids of the
// event(s) this event logically continues from. Returns nil when the event
// has no tracking extension (a root event).
func (e *Event) PredecessorIDs(trackingKey string) []string {
	ext, ok := e.Extension(trackingKey)
	if !ok {
		return nil
	}
	return ext.Values()
}

// QuantitySource returns the quantity list describing the goods this event
// moves: the output list for Transformation events, the child list for
// Aggregation and Association events, and the event's own list otherwise.
func (e *Event) QuantitySource() []QuantityElement {
	switch e.Kind {
	case KindTransformation:
		return e.OutputQuantityList
	case KindAggregation, KindAssociation:
		return e.ChildQuantityList
	default:
		return e.QuantityList
	}
}

// Validate checks kind-specific business rules on the event.
func (e *Event) Validate() error {
	switch e.Kind {
	case KindObject:
		if len(e.EPCList) == 0 && len(e.QuantityList) == 0 {
			return fmt.Errorf("%w: object event %s has neither an EPC list nor a quantity list", ErrInvalidEvent, e.ID)
		}
	case KindAggregation, KindAssociation:
		if e.ParentID == "" && e.Action != ActionObserve {
			return fmt.Errorf("%w: %s %s requires a parent id for action %s", ErrInvalidEvent, e.Kind, e.ID, e.Action)
		}
	case KindTransaction, KindTransformation:
		// No structural rules beyond the shared ones.
	default:
		return fmt.Errorf("%w: unknown event kind %q", ErrInvalidEvent, e.Kind)
	}
	return nil
}
