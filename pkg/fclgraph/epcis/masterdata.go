package epcis

import (
	"fmt"
	"strconv"
	"strings"
)

// cbvmda attribute names used by the Location and EPCClass vocabularies.
const (
	attrName        = "name"
	attrStreet      = "streetAddressOne"
	attrCity        = "city"
	attrState       = "state"
	attrPostalCode  = "postalCode"
	attrCountryCode = "countryCode"
	attrGeoLocation = "geoLocation"
	attrDescription = "descriptionShort"
)

// LocationNode is one element of the Location vocabulary: a physical or
// business location referenced by event bizLocation ids.
type LocationNode struct {
	ID      string
	Name    string
	Address string
	City    string
	State   string
	Zip     string
	Country string
	Lat     float64
	Lng     float64

	// Attributes holds vocabulary attributes beyond the standard cbvmda
	// set, keyed by their namespace-qualified name, in declaration order.
	Attributes []VocabularyAttribute
}

// VocabularyAttribute is one id/value attribute of a vocabulary element.
type VocabularyAttribute struct {
	ID    string
	Value string
}

// Attribute returns the extra attribute value for a namespace-qualified id
// and whether it exists.
func (l *LocationNode) Attribute(id string) (string, bool) {
	for _, a := range l.Attributes {
		if a.ID == id {
			return a.Value, true
		}
	}
	return "", false
}

// AttributeByLocalName returns the first extra attribute whose local name
// (the part after the namespace prefix) matches, and whether one exists.
func (l *LocationNode) AttributeByLocalName(local string) (string, bool) {
	for _, a := range l.Attributes {
		if localName(a.ID) == local {
			return a.Value, true
		}
	}
	return "", false
}

// GeoID returns the geo URI for the location's coordinate.
func (l *LocationNode) GeoID() string {
	return fmt.Sprintf("geo:%s,%s", formatCoord(l.Lat), formatCoord(l.Lng))
}

// ProductNode is one element of the EPCClass vocabulary.
type ProductNode struct {
	ID   string
	Name string
}

func localName(id string) string {
	if i := strings.LastIndex(id, ":"); i >= 0 {
		return id[i+1:]
	}
	return id
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// locationFromAttributes builds a LocationNode from a vocabulary element's
// attribute list, mapping the standard cbvmda attributes onto typed fields
// and keeping the remainder as extra attributes.
func locationFromAttributes(id string, attrs []VocabularyAttribute) (*LocationNode, error) {
	node := &LocationNode{ID: id}
	for _, a := range attrs {
		switch localName(a.ID) {
		case attrName:
			node.Name = a.Value
		case attrStreet:
			node.Address = a.Value
		case attrCity:
			node.City = a.Value
		case attrState:
			node.State = a.Value
		case attrPostalCode:
			node.Zip = a.Value
		case attrCountryCode:
			node.Country = a.Value
		case attrGeoLocation:
			lat, lng, err := parseGeoID(a.Value)
			if err != nil {
				return nil, fmt.Errorf("location %s: %w", id, err)
			}
			node.Lat, node.Lng = lat, lng
		default:
			node.Attributes = append(node.Attributes, a)
		}
	}
	return node, nil
}

// parseGeoID splits a "geo:<lat>,<lng>" URI into its coordinate parts.
func parseGeoID(geo string) (lat, lng float64, err error) {
	coords := geo[strings.LastIndex(geo, ":")+1:]
	latStr, lngStr, found := strings.Cut(coords, ",")
	if !found {
		return 0, 0, fmt.Errorf("%w: geo location %q", ErrDecode, geo)
	}
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: geo latitude %q", ErrDecode, latStr)
	}
	lng, err = strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: geo longitude %q", ErrDecode, lngStr)
	}
	return lat, lng, nil
}

// productFromAttributes builds a ProductNode from a vocabulary element's
// attribute list.
func productFromAttributes(id string, attrs []VocabularyAttribute) *ProductNode {
	node := &ProductNode{ID: id}
	for _, a := range attrs {
		if localName(a.ID) == attrDescription {
			node.Name = a.Value
		}
	}
	return node
}
