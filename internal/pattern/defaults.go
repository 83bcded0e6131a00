package pattern

// Field keys extracted by the standard payslip definitions.
const (
	KeyName    = "name"
	KeyAccount = "account_number"
	KeyPAN     = "pan_number"
	KeyMonth   = "month"
	KeyYear    = "year"
	KeyCredits = "credits"
	KeyDebits  = "debits"
	KeyTax     = "tax"
	KeyDSOP    = "dsop"
)

const monthAlternation = `(JANUARY|FEBRUARY|MARCH|APRIL|MAY|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER|JAN|FEB|MAR|APR|JUN|JUL|AUG|SEP|SEPT|OCT|NOV|DEC)`

const amountCapture = `((?:\d{1,3}(?:,\d{2,3})+|\d+)(?:\.\d{1,2})?)`

// StandardDefinitions registers the default payslip field patterns on an
// engine. Regex candidates carry the highest priority, keyword lookups sit
// below them, and positional fallbacks run last.
func StandardDefinitions(e *Engine) error {
	type def struct {
		key      string
		patterns []ExtractorPattern
	}

	defs := []def{
		{KeyName, []ExtractorPattern{
			{Pattern: `(?i)Name\s*[:\-]\s*([A-Za-z][A-Za-z .]+)`, Type: TypeRegex, Priority: 10,
				Preprocess:  []Step{StepNormalizeWhitespace},
				Postprocess: []Step{StepTrim}},
			{Pattern: "Name of Employee", Type: TypeKeyword, Priority: 5,
				Postprocess: []Step{StepTrim}},
		}},
		{KeyAccount, []ExtractorPattern{
			{Pattern: `(?i)A\/?C(?:\s*No)?\.?\s*[:\-]?\s*([0-9\/\-A-Z]{6,20})`, Type: TypeRegex, Priority: 10,
				Preprocess:  []Step{StepNormalizeWhitespace},
				Postprocess: []Step{StepTrim}},
			{Pattern: `(?i)Account\s*(?:Number|No\.?)\s*[:\-]?\s*([0-9\/\-A-Z]{6,20})`, Type: TypeRegex, Priority: 8,
				Postprocess: []Step{StepTrim}},
		}},
		{KeyPAN, []ExtractorPattern{
			{Pattern: `(?i)PAN\s*(?:No\.?|Number)?\s*[:\-]?\s*([A-Z]{5}[0-9]{4}[A-Z])`, Type: TypeRegex, Priority: 10,
				Postprocess: []Step{StepTrim, StepUppercase}},
		}},
		{KeyMonth, []ExtractorPattern{
			{Pattern: `(?i)(?:Pay\s+)?(?:for|month)(?:\s+of)?\s*[:\-]?\s*` + monthAlternation, Type: TypeRegex, Priority: 10,
				Preprocess:  []Step{StepNormalizeWhitespace, StepUppercase},
				Postprocess: []Step{StepTrim}},
			{Pattern: `(?i)\b` + monthAlternation + `[\s,\-\/]+(?:20\d{2})\b`, Type: TypeRegex, Priority: 5,
				Preprocess:  []Step{StepUppercase},
				Postprocess: []Step{StepTrim}},
		}},
		{KeyYear, []ExtractorPattern{
			{Pattern: `(?i)(?:year|yr)\s*[:\-]?\s*(20\d{2})`, Type: TypeRegex, Priority: 10,
				Postprocess: []Step{StepTrim}},
			{Pattern: `\b(20\d{2})\b`, Type: TypeRegex, Priority: 5,
				Postprocess: []Step{StepTrim}},
		}},
		{KeyCredits, []ExtractorPattern{
			{Pattern: `(?i)(?:Gross\s+Pay|Total\s+Credits?|Total\s+Earnings?)\s*[:\-]?\s*` + amountCapture, Type: TypeRegex, Priority: 10,
				Preprocess:  []Step{StepNormalizeWhitespace},
				Postprocess: []Step{StepNormalizeCurrency}},
			{Pattern: "Gross", Type: TypeKeyword, Priority: 5,
				Postprocess: []Step{StepNormalizeCurrency}},
		}},
		{KeyDebits, []ExtractorPattern{
			{Pattern: `(?i)(?:Total\s+Deductions?|Total\s+Debits?)\s*[:\-]?\s*` + amountCapture, Type: TypeRegex, Priority: 10,
				Preprocess:  []Step{StepNormalizeWhitespace},
				Postprocess: []Step{StepNormalizeCurrency}},
		}},
		{KeyTax, []ExtractorPattern{
			{Pattern: `(?i)(?:Income\s+Tax|ITAX|I\.?Tax|TDS)\s*[:\-]?\s*` + amountCapture, Type: TypeRegex, Priority: 10,
				Preprocess:  []Step{StepNormalizeWhitespace},
				Postprocess: []Step{StepNormalizeCurrency}},
		}},
		{KeyDSOP, []ExtractorPattern{
			{Pattern: `(?i)(?:DSOP(?:\s+Fund)?|Provident\s+Fund|PF)\s*[:\-]?\s*` + amountCapture, Type: TypeRegex, Priority: 10,
				Preprocess:  []Step{StepNormalizeWhitespace},
				Postprocess: []Step{StepNormalizeCurrency}},
		}},
	}

	for _, d := range defs {
		if err := e.Register(d.key, d.patterns...); err != nil {
			return err
		}
	}
	return nil
}
