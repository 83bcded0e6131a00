package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"paymax/internal/domain"
	"paymax/internal/extraction"
	"paymax/internal/parser"
	"paymax/internal/port"
	"paymax/internal/section"
)

// State names the coordinator's position in the per-document state machine.
type State string

const (
	StateInit           State = "init"
	StateTextExtracted  State = "text_extracted"
	StateFormatDetected State = "format_detected"
	StateParserSelected State = "parser_selected"
	StateParsed         State = "parsed"
	StateRecovered      State = "recovered"
	StateCached         State = "cached"
	StateRejected       State = "rejected"
)

// Result is the coordinator's answer for one document.
type Result struct {
	Record     *domain.Payslip            `json:"record"`
	Confidence domain.Confidence          `json:"confidence"`
	ParserName string                     `json:"parser_name"`
	Messages   []domain.ValidationMessage `json:"messages,omitempty"`
	Strategy   domain.ExtractionStrategy  `json:"strategy"`
	FromCache  bool                       `json:"from_cache"`
	State      State                      `json:"state"`
	DocumentID string                     `json:"document_id"`
}

// RecordStore looks up previously persisted records by document hash. A nil
// store disables persistent reuse; lookup errors fall through to a full parse.
type RecordStore interface {
	GetByHash(ctx context.Context, hash string) (*domain.Payslip, error)
}

// Coordinator orchestrates the parsing pipeline for one document at a time:
// extraction, format detection, parser selection and execution, confidence
// comparison, recovery, and caching. Independent documents may be processed
// concurrently; the cache and telemetry store are the only shared state.
type Coordinator struct {
	analyzer  *extraction.Analyzer
	selector  *extraction.StrategySelector
	extractor *extraction.TextExtractor
	registry  *parser.Registry
	recovery  *parser.RecoveryExtractor
	cache     *Cache
	store     RecordStore
	telemetry *Telemetry
	timeout   time.Duration
}

// NewCoordinator wires the pipeline. All collaborators are injected; the
// coordinator owns no global state.
func NewCoordinator(
	analyzer *extraction.Analyzer,
	selector *extraction.StrategySelector,
	extractor *extraction.TextExtractor,
	registry *parser.Registry,
	recovery *parser.RecoveryExtractor,
	cache *Cache,
	store RecordStore,
	telemetry *Telemetry,
	timeout time.Duration,
) *Coordinator {
	return &Coordinator{
		analyzer:  analyzer,
		selector:  selector,
		extractor: extractor,
		registry:  registry,
		recovery:  recovery,
		cache:     cache,
		store:     store,
		telemetry: telemetry,
		timeout:   timeout,
	}
}

// Telemetry exposes the attempt ring buffer for diagnostics.
func (c *Coordinator) Telemetry() *Telemetry {
	return c.telemetry
}

// Process runs the whole pipeline for one document under the global timeout.
// The real work races the deadline; when the deadline wins the work is
// cancelled and ErrProcessingTimeout is returned, distinct from any parse
// failure so callers can answer "retry" instead of "unsupported format".
func (c *Coordinator) Process(ctx context.Context, doc port.Document, purpose domain.ExtractionPurpose, hint domain.ParseHint) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := c.process(ctx, doc, purpose, hint)
		done <- outcome{result, err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, domain.ErrProcessingTimeout
		}
		return nil, ctx.Err()
	}
}

func (c *Coordinator) process(ctx context.Context, doc port.Document, purpose domain.ExtractionPurpose, hint domain.ParseHint) (*Result, error) {
	// Step 1: structural rejection before any work.
	if doc.PageCount() == 0 {
		return &Result{State: StateRejected}, domain.ErrEmptyDocument
	}

	id, err := DocumentID(doc)
	if err != nil {
		return &Result{State: StateRejected}, err
	}

	// Step 2: identical content short-circuits to the cached best result.
	if entry := c.cache.Get(id); entry != nil {
		record := entry.Record
		return &Result{
			Record:     &record,
			Confidence: entry.Confidence,
			ParserName: entry.ParserName,
			FromCache:  true,
			State:      StateCached,
			DocumentID: id,
		}, nil
	}

	// A record persisted by an earlier run is reused the same way, and warms
	// the in-memory cache for the next lookup. Low-tier records stay out of
	// the cache here too; reparsing may do better.
	if c.store != nil {
		if stored, err := c.store.GetByHash(ctx, id); err == nil && stored != nil &&
			stored.Confidence.Compare(domain.ConfidenceLow) > 0 {
			c.cache.Put(id, CacheEntry{
				Record:     *stored,
				Confidence: stored.Confidence,
				ParserName: stored.ParserName,
			})
			record := *stored
			return &Result{
				Record:     &record,
				Confidence: stored.Confidence,
				ParserName: stored.ParserName,
				FromCache:  true,
				State:      StateCached,
				DocumentID: id,
			}, nil
		}
	}

	profile, err := c.analyzer.Analyze(doc)
	if err != nil {
		return &Result{State: StateRejected, DocumentID: id}, err
	}
	strategy := c.selector.DetermineStrategy(profile, purpose)
	params := c.selector.ExtractionParameters(strategy, profile)

	text, _, err := c.extractor.Extract(ctx, doc, params)
	if err != nil {
		return &Result{State: StateRejected, DocumentID: id, Strategy: strategy}, err
	}
	if text == "" {
		return &Result{State: StateRejected, DocumentID: id, Strategy: strategy}, domain.ErrNoExtractableText
	}

	// Step 3: domain signals bias the recovery decision later.
	hasSignals := parser.HasDomainSignals(text)

	input := port.ParseInput{Text: text, Document: doc, Hint: hint}

	// Steps 4-5: best-guess parser first, in isolation; widen only when it
	// fails or scores low.
	first := c.selectFirst(text, hint)
	if first == nil {
		if hasSignals {
			return c.recover(text, id, strategy)
		}
		return &Result{State: StateRejected, DocumentID: id, Strategy: strategy}, domain.ErrNoParserOutput
	}

	best := c.runParser(ctx, first, input)
	if best == nil || !best.Confidence.AtLeast(domain.ConfidenceMedium) {
		for _, p := range c.registry.Parsers() {
			if p == first {
				continue
			}
			candidate := c.runParser(ctx, p, input)
			if candidate == nil {
				continue
			}
			// Strictly-greater comparison keeps the earliest result on
			// equal confidence (first writer wins).
			if best == nil || candidate.Confidence.Compare(best.Confidence) > 0 {
				best = candidate
			}
		}
	}

	// Step 6: recovery when nothing reached medium but the text looks like
	// a payslip.
	if (best == nil || !best.Confidence.AtLeast(domain.ConfidenceMedium)) && hasSignals {
		if best == nil {
			return c.recover(text, id, strategy)
		}
		// A low-confidence full parse still beats a synthesized minimal
		// record; keep it and surface its tier.
	}
	if best == nil {
		return &Result{State: StateRejected, DocumentID: id, Strategy: strategy}, domain.ErrNoParserOutput
	}

	best.Record.DocumentHash = id
	best.Record.PageCount = doc.PageCount()

	result := &Result{
		Record:     best.Record,
		Confidence: best.Confidence,
		ParserName: best.Record.ParserName,
		Messages:   best.Messages,
		Strategy:   strategy,
		State:      StateParsed,
		DocumentID: id,
	}

	// Step 7: never cache the lowest tier, so a bad guess cannot poison
	// future lookups of the identical document.
	if best.Confidence.Compare(domain.ConfidenceLow) > 0 {
		c.cache.Put(id, CacheEntry{
			Record:     *best.Record,
			Confidence: best.Confidence,
			ParserName: best.Record.ParserName,
		})
	}

	return result, nil
}

// selectFirst honors the caller hint before falling back to registry
// selection. The hint reorders parsers only; it never changes extraction.
func (c *Coordinator) selectFirst(text string, hint domain.ParseHint) port.PayslipParser {
	switch hint {
	case domain.HintMilitary:
		if p := c.registry.SelectByFormat(domain.FormatMilitary); p != nil {
			return p
		}
	case domain.HintCorporate:
		if p := c.registry.SelectByFormat(domain.FormatCorporate); p != nil {
			return p
		}
	}
	return c.registry.SelectBestParser(text)
}

// runParser executes one parser, converting any failure into telemetry and
// a nil candidate. Parser errors never escape the coordinator.
func (c *Coordinator) runParser(ctx context.Context, p port.PayslipParser, input port.ParseInput) *port.ParseOutput {
	start := time.Now()
	out, err := p.Parse(ctx, input)
	elapsed := time.Since(start)

	attempt := domain.ParseAttempt{
		ID:         uuid.New(),
		ParserName: p.Name(),
		Elapsed:    elapsed,
		TextLength: len(input.Text),
		At:         start.UTC(),
	}
	if err != nil || out == nil || out.Record == nil {
		if err != nil {
			log.Printf("pipeline.Coordinator: parser %s failed: %v", p.Name(), err)
		}
		c.telemetry.Record(attempt)
		return nil
	}

	attempt.Success = true
	attempt.Confidence = out.Confidence
	attempt.ItemCount = len(out.Record.Earnings) + len(out.Record.Deductions)
	c.telemetry.Record(attempt)
	return out
}

// recover synthesizes a minimal medium-confidence record from raw text.
func (c *Coordinator) recover(text, id string, strategy domain.ExtractionStrategy) (*Result, error) {
	record := c.recovery.Extract(text)
	if record == nil {
		return &Result{State: StateRejected, DocumentID: id, Strategy: strategy}, domain.ErrNoParserOutput
	}
	record.DocumentHash = id

	log.Printf("pipeline.Coordinator: recovery extraction produced a minimal record for %s", id)

	result := &Result{
		Record:     record,
		Confidence: record.Confidence,
		ParserName: record.ParserName,
		Messages:   section.Reconcile(record),
		Strategy:   strategy,
		State:      StateRecovered,
		DocumentID: id,
	}
	c.cache.Put(id, CacheEntry{
		Record:     *record,
		Confidence: record.Confidence,
		ParserName: record.ParserName,
	})
	return result, nil
}
