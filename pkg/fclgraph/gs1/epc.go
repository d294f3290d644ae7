package gs1

import (
	"fmt"
	"strings"
)

// ParseClassIdentifier splits an EPC class identifier into its product and
// lot components.
//
// Two shapes are accepted:
//
//   - URN style (urn:epc:idpat:sgtin:<prefix>.<itemref>.<lot>): the final
//     colon-separated segment is split at its last '.'.
//   - GS1 Digital Link style (https://id.gs1.org/01/<gtin>[/10/<lot>]):
//     the GTIN follows the "/01/" path segment, the optional lot follows
//     "/10/".
//
// When no lot component is present the lot is empty. Any other shape
// returns an error wrapping ErrUnparseableClass.
func ParseClassIdentifier(epcClass string) (product, lot string, err error) {
	if strings.HasPrefix(epcClass, "urn") {
		segment := epcClass[strings.LastIndex(epcClass, ":")+1:]
		if segment == "" {
			return "", "", fmt.Errorf("%w: %q", ErrUnparseableClass, epcClass)
		}
		if i := strings.LastIndex(segment, "."); i >= 0 {
			return segment[:i], segment[i+1:], nil
		}
		return segment, "", nil
	}

	_, after, found := strings.Cut(epcClass, "/01/")
	if !found || after == "" {
		return "", "", fmt.Errorf("%w: %q", ErrUnparseableClass, epcClass)
	}
	if gtin, l, hasLot := strings.Cut(after, "/10/"); hasLot {
		return gtin, l, nil
	}
	return after, "", nil
}

// GTINToURN formats a single SGTIN URN from its GTIN components.
// The combined company prefix, indicator digit and item reference must be
// 13 digits and the indicator a single digit; violations are caller errors.
func GTINToURN(companyPrefix, indicator, itemReference, serial string) (string, error) {
	if len(indicator) != 1 {
		return "", fmt.Errorf("%w: indicator digit must be one digit", ErrMalformedIdentifier)
	}
	if len(companyPrefix)+len(indicator)+len(itemReference) != 13 {
		return "", fmt.Errorf("%w: company prefix, indicator and item reference must total 13 digits", ErrMalformedIdentifier)
	}
	return fmt.Sprintf("urn:epc:id:sgtin:%s.%s%s.%s", companyPrefix, indicator, itemReference, serial), nil
}

// SGTINURNs builds one SGTIN URN per serial number.
// Component length rules are the same as GTINToURN.
func SGTINURNs(companyPrefix, indicator, itemReference string, serials []string) ([]string, error) {
	if len(indicator) != 1 {
		return nil, fmt.Errorf("%w: indicator digit must be one digit", ErrMalformedIdentifier)
	}
	if len(companyPrefix)+len(indicator)+len(itemReference) != 13 {
		return nil, fmt.Errorf("%w: company prefix, indicator and item reference must total 13 digits", ErrMalformedIdentifier)
	}
	prefix := fmt.Sprintf("urn:epc:id:sgtin:%s.%s%s.", companyPrefix, indicator, itemReference)
	urns := make([]string, 0, len(serials))
	for _, serial := range serials {
		urns = append(urns, prefix+serial)
	}
	return urns, nil
}

// ssccDigits is the combined digit length of an SSCC body
// (extension digit + company prefix + serial reference).
const ssccDigits = 17

// SSCCURN formats an SSCC URN. The combined length of company prefix,
// extension digit and serial reference must not exceed 17 digits; shorter
// serials are zero-padded to the full length.
func SSCCURN(companyPrefix, extension, serial string) (string, error) {
	total := len(companyPrefix) + len(extension) + len(serial)
	if total > ssccDigits {
		return "", fmt.Errorf("%w: company prefix, extension and serial must total 17 digits or less", ErrMalformedIdentifier)
	}
	padding := strings.Repeat("0", ssccDigits-total)
	return fmt.Sprintf("urn:epc:id:sscc:%s.%s%s%s", companyPrefix, extension, padding, serial), nil
}

// SGLNURN formats an SGLN URN. The company prefix and location reference
// must total 12 digits; the check digit is not part of the URN.
func SGLNURN(companyPrefix, locationReference, extension string) (string, error) {
	if len(companyPrefix)+len(locationReference) != 12 {
		return "", fmt.Errorf("%w: company prefix and location reference must total 12 digits", ErrMalformedIdentifier)
	}
	if extension == "" {
		extension = "0"
	}
	return fmt.Sprintf("urn:epc:id:sgln:%s.%s.%s", companyPrefix, locationReference, extension), nil
}

// SGTINURL formats a GS1 Digital Link URL for a GTIN, appending the
// computed check digit and an optional lot segment (AI 10).
func SGTINURL(companyPrefix, indicator, itemReference, lot string) (string, error) {
	if len(companyPrefix)+len(indicator)+len(itemReference) != 13 {
		return "", fmt.Errorf("%w: company prefix, indicator and item reference must total 13 digits", ErrMalformedIdentifier)
	}
	gtin := indicator + companyPrefix + itemReference
	check, err := CheckDigit(gtin)
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://id.gs1.org/01/%s%d", gtin, check)
	if lot != "" {
		url += "/10/" + lot
	}
	return url, nil
}

// SGLNURL formats a GS1 Digital Link URL for a GLN with its extension
// component (AI 254), appending the computed check digit.
func SGLNURL(companyPrefix, locationReference, extension string) (string, error) {
	if len(companyPrefix)+len(locationReference) != 12 {
		return "", fmt.Errorf("%w: company prefix and location reference must total 12 digits", ErrMalformedIdentifier)
	}
	gln := companyPrefix + locationReference
	check, err := CheckDigit(gln)
	if err != nil {
		return "", err
	}
	if extension == "" {
		extension = "0"
	}
	return fmt.Sprintf("https://id.gs1.org/414/%s%d/254/%s", gln, check, extension), nil
}

// SGLNURLToURN converts a Digital Link GLN URL back to an SGLN URN,
// resolving the company-prefix split through the prefix registry.
func SGLNURLToURN(table *PrefixTable, url string) (string, error) {
	_, after, found := strings.Cut(url, "/414/")
	if !found {
		return "", fmt.Errorf("%w: %q is not a /414/ Digital Link", ErrMalformedIdentifier, url)
	}
	key, extension, found := strings.Cut(after, "/254/")
	if !found {
		return "", fmt.Errorf("%w: %q lacks a /254/ extension segment", ErrMalformedIdentifier, url)
	}
	if table == nil {
		table = Default()
	}
	gcpLen, err := table.PrefixLength("414", key)
	if err != nil {
		return "", err
	}
	// The last digit of the key is the check digit.
	return SGLNURN(key[:gcpLen], key[gcpLen:len(key)-1], extension)
}
