package epcis

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Wire document types accepted by Decode.
const (
	docTypeDocument = "EPCISDocument"
	docTypeQuery    = "EPCISQueryDocument"
)

// Vocabulary types carried in the master-data header.
const (
	vocabLocation = "urn:epcglobal:epcis:vtype:Location"
	vocabEPCClass = "urn:epcglobal:epcis:vtype:EPCClass"
)

// eventID values arrive as named information URIs; only the digest part
// identifies the event.
const (
	eventIDPrefix = "ni:///sha-256;"
	eventIDSuffix = "?ver=CBV2.0"
)

type wireDocument struct {
	Context      []json.RawMessage `json:"@context"`
	Type         string            `json:"type"`
	ID           string            `json:"id"`
	CreationDate string            `json:"creationDate"`
	EPCISHeader  *wireHeader       `json:"epcisHeader"`
	EPCISBody    *wireBody         `json:"epcisBody"`
}

type wireHeader struct {
	EPCISMasterData struct {
		VocabularyList []wireVocabulary `json:"vocabularyList"`
	} `json:"epcisMasterData"`
}

type wireVocabulary struct {
	Type     string `json:"type"`
	Elements []struct {
		ID         string `json:"id"`
		Attributes []struct {
			ID        string `json:"id"`
			Attribute any    `json:"attribute"`
		} `json:"attributes"`
	} `json:"vocabularyElementList"`
}

type wireBody struct {
	EventList    []json.RawMessage `json:"eventList"`
	QueryResults *struct {
		ResultsBody struct {
			EventList []json.RawMessage `json:"eventList"`
		} `json:"resultsBody"`
	} `json:"queryResults"`
}

type wireRef struct {
	ID string `json:"id"`
}

type wireQuantity struct {
	EPCClass string  `json:"epcClass"`
	Quantity float64 `json:"quantity"`
	UOM      string  `json:"uom"`
}

type wireSource struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

type wireDestination struct {
	Type        string `json:"type"`
	Destination string `json:"destination"`
}

type wireBizTransaction struct {
	Type           string `json:"type"`
	BizTransaction string `json:"bizTransaction"`
}

type wireEvent struct {
	Type               string               `json:"type"`
	EventID            string               `json:"eventID"`
	EventTime          string               `json:"eventTime"`
	EventTimeZone      string               `json:"eventTimeZoneOffset"`
	RecordTime         string               `json:"recordTime"`
	Action             string               `json:"action"`
	BizStep            string               `json:"bizStep"`
	Disposition        string               `json:"disposition"`
	ReadPoint          *wireRef             `json:"readPoint"`
	BizLocation        *wireRef             `json:"bizLocation"`
	EPCList            []string             `json:"epcList"`
	QuantityList       []wireQuantity       `json:"quantityList"`
	ParentID           string               `json:"parentID"`
	ChildEPCs          []string             `json:"childEPCs"`
	ChildQuantityList  []wireQuantity       `json:"childQuantityList"`
	InputEPCList       []string             `json:"inputEPCList"`
	InputQuantityList  []wireQuantity       `json:"inputQuantityList"`
	OutputEPCList      []string             `json:"outputEPCList"`
	OutputQuantityList []wireQuantity       `json:"outputQuantityList"`
	TransformationID   string               `json:"transformationID"`
	SourceList         []wireSource         `json:"sourceList"`
	DestinationList    []wireDestination    `json:"destinationList"`
	BizTransactionList []wireBizTransaction `json:"bizTransactionList"`
}

// Decode parses an EPCIS 2.0 JSON document or query document into the
// in-memory model. Master-data vocabularies are read from the document
// header; namespaced extension attributes are preserved on each event.
func Decode(data []byte) (*Document, error) {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	doc := NewDocument()
	doc.ID = wire.ID
	doc.CreatedDate = wire.CreationDate

	// The first @context entry is the EPCIS context URI; later entries
	// declare extension namespaces.
	for i, raw := range wire.Context {
		if i == 0 {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		for prefix, uri := range entry {
			if s, ok := uri.(string); ok {
				doc.AddNamespace(prefix, s)
			}
		}
	}

	var eventList []json.RawMessage
	switch wire.Type {
	case docTypeDocument:
		if wire.EPCISHeader != nil {
			if err := decodeMasterData(doc, wire.EPCISHeader); err != nil {
				return nil, err
			}
		}
		if wire.EPCISBody != nil {
			eventList = wire.EPCISBody.EventList
		}
	case docTypeQuery:
		if wire.EPCISBody != nil && wire.EPCISBody.QueryResults != nil {
			eventList = wire.EPCISBody.QueryResults.ResultsBody.EventList
		}
	default:
		return nil, fmt.Errorf("%w: unsupported document type %q", ErrDecode, wire.Type)
	}

	for _, raw := range eventList {
		event, err := decodeEvent(raw)
		if err != nil {
			return nil, err
		}
		if err := doc.AddEvent(event); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func decodeMasterData(doc *Document, header *wireHeader) error {
	for _, vocab := range header.EPCISMasterData.VocabularyList {
		for _, element := range vocab.Elements {
			attrs := make([]VocabularyAttribute, 0, len(element.Attributes))
			for _, a := range element.Attributes {
				attrs = append(attrs, VocabularyAttribute{ID: a.ID, Value: fmt.Sprint(a.Attribute)})
			}
			switch vocab.Type {
			case vocabLocation:
				location, err := locationFromAttributes(element.ID, attrs)
				if err != nil {
					return err
				}
				doc.AddLocation(location)
			case vocabEPCClass:
				doc.AddProduct(productFromAttributes(element.ID, attrs))
			}
		}
	}
	return nil
}

func decodeEvent(raw json.RawMessage) (*Event, error) {
	var wire wireEvent
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: event: %v", ErrDecode, err)
	}

	kind := Kind(wire.Type)
	switch kind {
	case KindObject, KindAggregation, KindAssociation, KindTransaction, KindTransformation:
	default:
		return nil, fmt.Errorf("%w: unknown event type %q", ErrDecode, wire.Type)
	}

	event := &Event{
		ID:               normalizeEventID(wire.EventID),
		Kind:             kind,
		Action:           Action(wire.Action),
		EventTime:        wire.EventTime,
		TimeZoneOffset:   wire.EventTimeZone,
		RecordTime:       wire.RecordTime,
		BizStep:          wire.BizStep,
		Disposition:      wire.Disposition,
		EPCList:          wire.EPCList,
		QuantityList:     quantities(wire.QuantityList),
		ParentID:         wire.ParentID,
		ChildEPCs:        wire.ChildEPCs,
		TransformationID: wire.TransformationID,

		ChildQuantityList:  quantities(wire.ChildQuantityList),
		InputEPCList:       wire.InputEPCList,
		InputQuantityList:  quantities(wire.InputQuantityList),
		OutputEPCList:      wire.OutputEPCList,
		OutputQuantityList: quantities(wire.OutputQuantityList),
	}
	if wire.ReadPoint != nil {
		event.ReadPoint = wire.ReadPoint.ID
	}
	if wire.BizLocation != nil {
		event.BizLocation = wire.BizLocation.ID
	}
	for _, s := range wire.SourceList {
		event.SourceList = append(event.SourceList, Source(s))
	}
	for _, d := range wire.DestinationList {
		event.DestinationList = append(event.DestinationList, Destination(d))
	}
	for _, bt := range wire.BizTransactionList {
		event.BizTransactions = append(event.BizTransactions, BusinessTransaction(bt))
	}
	if err := decodeExtensions(event, raw); err != nil {
		return nil, err
	}
	return event, nil
}

// decodeExtensions captures every namespaced top-level key ("ns:name") of
// the event object. Keys are sorted for deterministic extension order.
func decodeExtensions(event *Event, raw json.RawMessage) error {
	var all map[string]any
	if err := json.Unmarshal(raw, &all); err != nil {
		return fmt.Errorf("%w: event: %v", ErrDecode, err)
	}
	names := make([]string, 0, len(all))
	for name := range all {
		if parts := strings.Split(name, ":"); len(parts) == 2 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		namespace, key, _ := strings.Cut(name, ":")
		event.AddExtension(namespace, key, all[name])
	}
	return nil
}

func normalizeEventID(id string) string {
	id = strings.TrimPrefix(id, eventIDPrefix)
	return strings.TrimSuffix(id, eventIDSuffix)
}

func quantities(wire []wireQuantity) []QuantityElement {
	if len(wire) == 0 {
		return nil
	}
	out := make([]QuantityElement, 0, len(wire))
	for _, q := range wire {
		out = append(out, QuantityElement(q))
	}
	return out
}
