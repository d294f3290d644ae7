// Package cbv provides GS1 Core Business Vocabulary value sets used in
// EPCIS event fields.
package cbv

// Disposition values as defined in section 7.2 of the CBV standard.
type Disposition string

const (
	DispositionActive                Disposition = "active"
	DispositionConformant            Disposition = "conformant"
	DispositionContainerClosed       Disposition = "container_closed"
	DispositionDamaged               Disposition = "damaged"
	DispositionDestroyed             Disposition = "destroyed"
	DispositionDispensed             Disposition = "dispensed"
	DispositionDisposed              Disposition = "disposed"
	DispositionEncoded               Disposition = "encoded"
	DispositionExpired               Disposition = "expired"
	DispositionInProgress            Disposition = "in_progress"
	DispositionInTransit             Disposition = "in_transit"
	DispositionInactive              Disposition = "inactive"
	DispositionNeedsReplacement      Disposition = "needs_replacement"
	DispositionNoPedigreeMatch       Disposition = "no_pedigree_match"
	DispositionNonSellableOther      Disposition = "non_sellable_other"
	DispositionPartiallyDispensed    Disposition = "partially_dispensed"
	DispositionRecalled              Disposition = "recalled"
	DispositionReserved              Disposition = "reserved"
	DispositionRetailSold            Disposition = "retail_sold"
	DispositionReturned              Disposition = "returned"
	DispositionSellableAccessible    Disposition = "sellable_accessible"
	DispositionSellableNotAccessible Disposition = "sellable_not_accessible"
	DispositionStolen                Disposition = "stolen"
	DispositionUnavailable           Disposition = "unavailable"
	DispositionUnknown               Disposition = "unknown"
)

// String returns the CBV identifier value.
func (d Disposition) String() string { return string(d) }

// BusinessTransactionType values as defined in section 7.3 of the CBV
// standard.
type BusinessTransactionType string

const (
	BizTransactionBillOfLading       BusinessTransactionType = "bol"
	BizTransactionDespatchAdvice     BusinessTransactionType = "desadv"
	BizTransactionInvoice            BusinessTransactionType = "inv"
	BizTransactionPedigree           BusinessTransactionType = "pedigree"
	BizTransactionPurchaseOrder      BusinessTransactionType = "po"
	BizTransactionPOConfirmation     BusinessTransactionType = "poc"
	BizTransactionProductionOrder    BusinessTransactionType = "prodorder"
	BizTransactionReceivingAdvice    BusinessTransactionType = "recadv"
	BizTransactionReturnMerchAuth    BusinessTransactionType = "rma"
	BizTransactionTestProcedure      BusinessTransactionType = "testprd"
	BizTransactionTestResult         BusinessTransactionType = "testres"
	BizTransactionUpstreamEPCISEvent BusinessTransactionType = "upevt"
)

// String returns the CBV identifier value.
func (t BusinessTransactionType) String() string { return string(t) }

var dispositions = map[Disposition]bool{
	DispositionActive: true, DispositionConformant: true, DispositionContainerClosed: true,
	DispositionDamaged: true, DispositionDestroyed: true, DispositionDispensed: true,
	DispositionDisposed: true, DispositionEncoded: true, DispositionExpired: true,
	DispositionInProgress: true, DispositionInTransit: true, DispositionInactive: true,
	DispositionNeedsReplacement: true, DispositionNoPedigreeMatch: true,
	DispositionNonSellableOther: true, DispositionPartiallyDispensed: true,
	DispositionRecalled: true, DispositionReserved: true, DispositionRetailSold: true,
	DispositionReturned: true, DispositionSellableAccessible: true,
	DispositionSellableNotAccessible: true, DispositionStolen: true,
	DispositionUnavailable: true, DispositionUnknown: true,
}

// Valid reports whether the disposition is part of the CBV value set.
func (d Disposition) Valid() bool {
	return dispositions[d]
}

var bizTransactionTypes = map[BusinessTransactionType]bool{
	BizTransactionBillOfLading: true, BizTransactionDespatchAdvice: true,
	BizTransactionInvoice: true, BizTransactionPedigree: true,
	BizTransactionPurchaseOrder: true, BizTransactionPOConfirmation: true,
	BizTransactionProductionOrder: true, BizTransactionReceivingAdvice: true,
	BizTransactionReturnMerchAuth: true, BizTransactionTestProcedure: true,
	BizTransactionTestResult: true, BizTransactionUpstreamEPCISEvent: true,
}

// Valid reports whether the transaction type is part of the CBV value set.
func (t BusinessTransactionType) Valid() bool {
	return bizTransactionTypes[t]
}
