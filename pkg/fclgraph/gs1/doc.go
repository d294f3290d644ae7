/*
Package gs1 implements the GS1 structured-identifier codec used by the
traceability graph converter.

# Overview

GS1 keys (GTIN, SSCC, GLN, ...) share a common structure: a variable-length
company prefix assigned by a GS1 member organisation, followed by a
type-specific reference and a mod-10 check digit. This package provides:

  - Check digit computation (CheckDigit)
  - Company-prefix-length resolution against the GS1 prefix registry
    (CompanyPrefixLength, PrefixTable)
  - Parsing of EPC class identifiers in URN and GS1 Digital Link form
    (ParseClassIdentifier)
  - Deterministic URN and Digital Link builders for SGTIN, SSCC and SGLN

# Prefix Resolution

Company prefixes have registry-determined lengths between 3 and 12 digits.
CompanyPrefixLength validates the key against the structural pattern of its
application identifier, normalises it so the prefix always starts at the
second digit, and then probes the registry from the longest candidate
length down:

	length, err := gs1.CompanyPrefixLength("01", "00614141000037")

The registry is bundled with the package and loaded once per process. Use
LoadTable to substitute a newer copy of the GS1 GCP prefix format list:

	table, err := gs1.LoadTable("gcpprefixformatlist.json")
	length, err := table.PrefixLength("01", key)

All failures are surfaced as errors wrapping ErrMalformedIdentifier or
ErrUnknownPrefix; nothing is silently defaulted.
*/
package gs1
