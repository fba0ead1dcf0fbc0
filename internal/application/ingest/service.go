package ingest

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/amaru-ids/flowsink/internal/application"
	domain "github.com/amaru-ids/flowsink/internal/domain/batch"
)

// Service implements the batch ingest use-case: persist the payload
// verbatim, summarize it on the console stream, and build the
// acknowledgement. Stateless and safe for concurrent use.
type Service struct {
	Log     domain.Store
	Archive domain.Archiver // optional, may be nil
	Clock   application.Clock
}

// Ingest persists one decoded batch and returns its receipt. Any
// failure aborts the whole batch; nothing is acknowledged partially.
func (s *Service) Ingest(ctx context.Context, doc domain.Document) (domain.Receipt, error) {
	b := domain.FromDocument(doc)
	now := s.Clock.Now()

	log.Printf("[%s] received batch from device: %s",
		now.Format("2006-01-02 15:04:05"), b.Doc.String("deviceId", "Unknown"))
	log.Printf("batch size: %d records", b.Size())
	log.Printf("timestamp: %s", b.Doc.String("timestamp", "Unknown"))

	// The file holds the original payload pretty-printed, one file
	// per batch. The same bytes go to the archive when enabled.
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return domain.Receipt{}, err
	}

	name := domain.FileName(b.DeviceID(), b.Timestamp())
	path, err := s.Log.Save(ctx, name, data)
	if err != nil {
		return domain.Receipt{}, err
	}
	log.Printf("data saved to: %s", path)

	if s.Archive != nil {
		// Archive failure never fails the request.
		if url, aerr := s.Archive.Archive(ctx, name, data); aerr != nil {
			log.Printf("warning: batch archive failed: %v", aerr)
		} else {
			log.Printf("batch archived to: %s", url)
		}
	}

	if sample, ok := b.SampleFlow(); ok {
		logSampleFlow(sample)
	}

	analysis, included := b.Analysis()
	if included {
		logAnalysis(analysis)
	} else {
		log.Printf("no analysis data received")
	}

	riskLevel := domain.RiskNoAnalysis
	if included {
		riskLevel = analysis.RiskLevel()
	}

	return domain.Receipt{
		Status:           domain.StatusSuccess,
		Message:          "Batch received successfully",
		DeviceID:         b.DeviceID(),
		RecordsReceived:  b.FlowCount(),
		AnalysisIncluded: included,
		RiskLevel:        riskLevel,
		Timestamp:        now.Format("2006-01-02 15:04:05"),
	}, nil
}

// logSampleFlow prints the first flow's identification fields and key
// model features, then the feature-completeness check.
func logSampleFlow(flow domain.Document) {
	log.Printf("first flow sample:")
	log.Printf("  flow id: %s", flow.String("flowId", "N/A"))
	log.Printf("  label: %s", flow.String("label", "N/A"))
	log.Printf("  duration: %d ms", flow.Int("flowDuration", 0))
	log.Printf("  total fwd/bwd packets: %d/%d",
		flow.Int("totalFwdPackets", 0), flow.Int("totalBwdPackets", 0))
	log.Printf("  flow bytes/s: %.2f", flow.Float("flowBytesPerSecond", 0))
	log.Printf("  flow packets/s: %.2f", flow.Float("flowPacketsPerSecond", 0))
	log.Printf("  packet length mean: %.2f", flow.Float("packetLengthMean", 0))
	log.Printf("  flow IAT mean: %.2f", flow.Float("flowIATMean", 0))

	if missing := domain.MissingFeatures(flow); len(missing) > 0 {
		log.Printf("  missing features: %s", strings.Join(missing, ", "))
	} else {
		log.Printf("  all %d model features present", len(domain.ExpectedFlowFeatures))
	}
}

func logAnalysis(a domain.Analysis) {
	log.Printf("analysis results:")
	log.Printf("  model status: %s", a.ModelStatus())
	log.Printf("  ml confidence: %g", a.Confidence())
	log.Printf("  risk level: %s", a.RiskLevel())
	log.Printf("  memory utilization: %g", a.MemoryUtilization())
	if recs := a.Recommendations(); len(recs) > 0 {
		log.Printf("  recommendations: %s", strings.Join(recs, ", "))
	}
}
