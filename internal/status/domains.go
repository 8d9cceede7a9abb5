package status

// Competition lifecycle.

// CompetitionStatus is a competition lifecycle code.
type CompetitionStatus string

const (
	CompetitionDraft              CompetitionStatus = "DRAFT"
	CompetitionPublished          CompetitionStatus = "PUBLISHED"
	CompetitionRegistrationOpen   CompetitionStatus = "REGISTRATION_OPEN"
	CompetitionRegistrationClosed CompetitionStatus = "REGISTRATION_CLOSED"
	CompetitionInProgress         CompetitionStatus = "IN_PROGRESS"
	CompetitionCompleted          CompetitionStatus = "COMPLETED"
	CompetitionCancelled          CompetitionStatus = "CANCELLED"
)

var competitionOrder = []CompetitionStatus{
	CompetitionDraft,
	CompetitionPublished,
	CompetitionRegistrationOpen,
	CompetitionRegistrationClosed,
	CompetitionInProgress,
	CompetitionCompleted,
	CompetitionCancelled,
}

var competitionTable = map[CompetitionStatus]Display{
	CompetitionDraft:              {Label: "draft", Severity: SeverityNeutral},
	CompetitionPublished:          {Label: "published", Severity: SeverityInfo},
	CompetitionRegistrationOpen:   {Label: "registration open", Severity: SeveritySuccess},
	CompetitionRegistrationClosed: {Label: "registration closed", Severity: SeverityWarning},
	CompetitionInProgress:         {Label: "in progress", Severity: SeverityInfo},
	CompetitionCompleted:          {Label: "completed", Severity: SeverityNeutral},
	CompetitionCancelled:          {Label: "cancelled", Severity: SeverityError},
}

// Display resolves the code's label and severity.
func (s CompetitionStatus) Display() (Display, error) {
	d, ok := competitionTable[s]
	if !ok {
		return Display{}, unknown(DomainCompetition, string(s))
	}
	return d, nil
}

// Entry lifecycle.

// EntryStatus is a race entry lifecycle code.
type EntryStatus string

const (
	EntryPending   EntryStatus = "PENDING"
	EntryConfirmed EntryStatus = "CONFIRMED"
	EntryCheckedIn EntryStatus = "CHECKED_IN"
	EntryScratched EntryStatus = "SCRATCHED"
	EntryNoShow    EntryStatus = "NO_SHOW"
	EntryCancelled EntryStatus = "CANCELLED"
)

var entryOrder = []EntryStatus{
	EntryPending,
	EntryConfirmed,
	EntryCheckedIn,
	EntryScratched,
	EntryNoShow,
	EntryCancelled,
}

var entryTable = map[EntryStatus]Display{
	EntryPending:   {Label: "awaiting payment", Severity: SeverityWarning},
	EntryConfirmed: {Label: "confirmed", Severity: SeveritySuccess},
	EntryCheckedIn: {Label: "checked in", Severity: SeverityInfo},
	EntryScratched: {Label: "scratched", Severity: SeverityNeutral},
	EntryNoShow:    {Label: "no show", Severity: SeverityError},
	EntryCancelled: {Label: "cancelled", Severity: SeverityNeutral},
}

// Display resolves the code's label and severity.
func (s EntryStatus) Display() (Display, error) {
	d, ok := entryTable[s]
	if !ok {
		return Display{}, unknown(DomainEntry, string(s))
	}
	return d, nil
}

// Result outcome.

// ResultStatus is a race result outcome code.
type ResultStatus string

const (
	ResultOK  ResultStatus = "OK"
	ResultDQ  ResultStatus = "DQ"
	ResultDNS ResultStatus = "DNS"
	ResultDNF ResultStatus = "DNF"
	ResultDSQ ResultStatus = "DSQ"
)

var resultOrder = []ResultStatus{ResultOK, ResultDQ, ResultDNS, ResultDNF, ResultDSQ}

var resultTable = map[ResultStatus]Display{
	ResultOK:  {Label: "finished", Severity: SeveritySuccess},
	ResultDQ:  {Label: "foul", Severity: SeverityError},
	ResultDNS: {Label: "did not start", Severity: SeverityNeutral},
	ResultDNF: {Label: "did not finish", Severity: SeverityWarning},
	ResultDSQ: {Label: "disqualified", Severity: SeverityError},
}

// Display resolves the code's label and severity.
func (s ResultStatus) Display() (Display, error) {
	d, ok := resultTable[s]
	if !ok {
		return Display{}, unknown(DomainResult, string(s))
	}
	return d, nil
}

// Payment lifecycle.

// PaymentStatus is a registration order payment code.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
	PaymentCancelled  PaymentStatus = "CANCELLED"
)

var paymentOrder = []PaymentStatus{
	PaymentPending,
	PaymentProcessing,
	PaymentCompleted,
	PaymentFailed,
	PaymentRefunded,
	PaymentCancelled,
}

var paymentTable = map[PaymentStatus]Display{
	PaymentPending:    {Label: "awaiting payment", Severity: SeverityWarning},
	PaymentProcessing: {Label: "processing", Severity: SeverityInfo},
	PaymentCompleted:  {Label: "paid", Severity: SeveritySuccess},
	PaymentFailed:     {Label: "failed", Severity: SeverityError},
	PaymentRefunded:   {Label: "refunded", Severity: SeverityNeutral},
	PaymentCancelled:  {Label: "cancelled", Severity: SeverityNeutral},
}

// Display resolves the code's label and severity.
func (s PaymentStatus) Display() (Display, error) {
	d, ok := paymentTable[s]
	if !ok {
		return Display{}, unknown(DomainPayment, string(s))
	}
	return d, nil
}
