package epcis

import (
	"encoding/json"
)

// epcisContext is the EPCIS 2.0 JSON-LD context URI.
const epcisContext = "https://ref.gs1.org/standards/epcis/2.0.0/epcis-context.jsonld"

// Encode writes the document back out in the EPCISDocument JSON shape,
// including the master-data header and every event with its namespaced
// extensions. The output is deterministic (object keys are sorted).
func Encode(doc *Document) ([]byte, error) {
	context := []any{epcisContext}
	if len(doc.Namespaces) > 0 {
		context = append(context, doc.Namespaces)
	}

	out := map[string]any{
		"@context":      context,
		"type":          docTypeDocument,
		"schemaVersion": "2.0",
		"creationDate":  doc.CreatedDate,
		"epcisHeader":   encodeMasterData(doc),
		"epcisBody": map[string]any{
			"eventList": encodeEvents(doc.Events()),
		},
	}
	if doc.ID != "" {
		out["id"] = doc.ID
	}
	return json.Marshal(out)
}

func encodeMasterData(doc *Document) map[string]any {
	vocabularies := make([]any, 0, 2)

	if locations := doc.Locations(); len(locations) > 0 {
		elements := make([]any, 0, len(locations))
		for _, l := range locations {
			attrs := []any{
				vocabAttr("cbvmda:"+attrName, l.Name),
				vocabAttr("cbvmda:"+attrStreet, l.Address),
				vocabAttr("cbvmda:"+attrCity, l.City),
				vocabAttr("cbvmda:"+attrState, l.State),
				vocabAttr("cbvmda:"+attrPostalCode, l.Zip),
				vocabAttr("cbvmda:"+attrCountryCode, l.Country),
				vocabAttr("cbvmda:"+attrGeoLocation, l.GeoID()),
			}
			for _, extra := range l.Attributes {
				attrs = append(attrs, vocabAttr(extra.ID, extra.Value))
			}
			elements = append(elements, map[string]any{"id": l.ID, "attributes": attrs})
		}
		vocabularies = append(vocabularies, map[string]any{
			"type":                  vocabLocation,
			"vocabularyElementList": elements,
		})
	}

	if products := doc.Products(); len(products) > 0 {
		elements := make([]any, 0, len(products))
		for _, p := range products {
			elements = append(elements, map[string]any{
				"id":         p.ID,
				"attributes": []any{vocabAttr("cbvmda:"+attrDescription, p.Name)},
			})
		}
		vocabularies = append(vocabularies, map[string]any{
			"type":                  vocabEPCClass,
			"vocabularyElementList": elements,
		})
	}

	return map[string]any{
		"epcisMasterData": map[string]any{"vocabularyList": vocabularies},
	}
}

func vocabAttr(id, value string) map[string]any {
	return map[string]any{"id": id, "attribute": value}
}

func encodeEvents(events []*Event) []any {
	out := make([]any, 0, len(events))
	for _, e := range events {
		out = append(out, encodeEvent(e))
	}
	return out
}

func encodeEvent(e *Event) map[string]any {
	body := map[string]any{
		"type":                string(e.Kind),
		"eventID":             eventIDPrefix + e.ID + eventIDSuffix,
		"eventTime":           e.EventTime,
		"eventTimeZoneOffset": e.TimeZoneOffset,
	}
	if e.RecordTime != "" {
		body["recordTime"] = e.RecordTime
	}
	if e.Action != "" && e.Kind != KindTransformation {
		body["action"] = string(e.Action)
	}
	if e.BizStep != "" {
		body["bizStep"] = e.BizStep
	}
	if e.Disposition != "" {
		body["disposition"] = e.Disposition
	}
	if e.ReadPoint != "" {
		body["readPoint"] = map[string]any{"id": e.ReadPoint}
	}
	if e.BizLocation != "" {
		body["bizLocation"] = map[string]any{"id": e.BizLocation}
	}
	if len(e.SourceList) > 0 {
		list := make([]any, 0, len(e.SourceList))
		for _, s := range e.SourceList {
			list = append(list, map[string]any{"type": s.Type, "source": s.Source})
		}
		body["sourceList"] = list
	}
	if len(e.DestinationList) > 0 {
		list := make([]any, 0, len(e.DestinationList))
		for _, d := range e.DestinationList {
			list = append(list, map[string]any{"type": d.Type, "destination": d.Destination})
		}
		body["destinationList"] = list
	}
	if len(e.BizTransactions) > 0 {
		list := make([]any, 0, len(e.BizTransactions))
		for _, bt := range e.BizTransactions {
			list = append(list, map[string]any{"type": bt.Type, "bizTransaction": bt.BizTransaction})
		}
		body["bizTransactionList"] = list
	}

	switch e.Kind {
	case KindObject, KindTransaction:
		if e.ParentID != "" {
			body["parentID"] = e.ParentID
		}
		putList(body, "epcList", e.EPCList)
		putQuantities(body, "quantityList", e.QuantityList)
	case KindAggregation, KindAssociation:
		if e.ParentID != "" {
			body["parentID"] = e.ParentID
		}
		putList(body, "childEPCs", e.ChildEPCs)
		putQuantities(body, "childQuantityList", e.ChildQuantityList)
	case KindTransformation:
		putList(body, "inputEPCList", e.InputEPCList)
		putQuantities(body, "inputQuantityList", e.InputQuantityList)
		putList(body, "outputEPCList", e.OutputEPCList)
		putQuantities(body, "outputQuantityList", e.OutputQuantityList)
		if e.TransformationID != "" {
			body["transformationID"] = e.TransformationID
		}
	}

	for _, ext := range e.Extensions {
		body[ext.Name()] = ext.Content
	}
	return body
}

func putList(body map[string]any, key string, list []string) {
	if len(list) > 0 {
		body[key] = list
	}
}

func putQuantities(body map[string]any, key string, list []QuantityElement) {
	if len(list) == 0 {
		return
	}
	out := make([]any, 0, len(list))
	for _, q := range list {
		out = append(out, map[string]any{
			"epcClass": q.EPCClass,
			"quantity": q.Quantity,
			"uom":      q.UOM,
		})
	}
	body[key] = out
}
