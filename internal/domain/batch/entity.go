package batch

import "fmt"

// Placeholder values used when the client omits a field.
const (
	DefaultDeviceID  = "unknown"
	DefaultTimestamp = "unknown"

	RiskUnknown    = "Unknown"
	RiskNoAnalysis = "No Analysis"
)

// Status tags carried in the acknowledgement envelope.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Batch wraps one uploaded payload. All fields are optional; the
// accessors apply the documented defaults.
type Batch struct {
	Doc Document
}

func FromDocument(doc Document) Batch {
	return Batch{Doc: doc}
}

func (b Batch) DeviceID() string {
	return b.Doc.String("deviceId", DefaultDeviceID)
}

// Size is the client's advisory record count. It is never checked
// against the actual flow count.
func (b Batch) Size() int {
	return b.Doc.Int("batchSize", 0)
}

// Timestamp is the client-supplied batch timestamp, used verbatim as
// part of the log filename.
func (b Batch) Timestamp() string {
	return b.Doc.String("timestamp", DefaultTimestamp)
}

// FlowCount is the raw length of the flows array. The receipt reports
// this count even when elements are not objects.
func (b Batch) FlowCount() int {
	return len(b.Doc.Array("flows"))
}

// Flows returns the flow records in upload order, skipping any
// non-object elements.
func (b Batch) Flows() []Document {
	arr := b.Doc.Array("flows")
	flows := make([]Document, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			flows = append(flows, Document(m))
		}
	}
	return flows
}

// SampleFlow returns the first flow record, if any.
func (b Batch) SampleFlow() (Document, bool) {
	flows := b.Flows()
	if len(flows) == 0 {
		return nil, false
	}
	return flows[0], true
}

// Analysis returns the attached on-device model summary, if present.
func (b Batch) Analysis() (Analysis, bool) {
	obj := b.Doc.Object("pytorchAnalysis")
	if obj == nil {
		return Analysis{}, false
	}
	return Analysis{Doc: obj}, true
}

// FileName derives the per-batch log filename from the device id and
// the client timestamp. Identical pairs overwrite.
func FileName(deviceID, timestamp string) string {
	return fmt.Sprintf("batch_%s_%s.json", deviceID, timestamp)
}

// Analysis is the opaque precomputed risk summary attached to a batch.
// It is read and echoed, never recomputed here.
type Analysis struct {
	Doc Document
}

func (a Analysis) ModelStatus() string {
	return a.Doc.String("modelStatus", RiskUnknown)
}

func (a Analysis) Confidence() float64 {
	return a.Doc.Float("mlConfidence", 0)
}

func (a Analysis) RiskLevel() string {
	return a.Doc.String("riskLevel", RiskUnknown)
}

func (a Analysis) MemoryUtilization() float64 {
	return a.Doc.Float("memoryUtilization", 0)
}

func (a Analysis) Recommendations() []string {
	return a.Doc.Strings("recommendations")
}

// Receipt is the acknowledgement returned for an accepted batch.
type Receipt struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	DeviceID         string `json:"deviceId"`
	RecordsReceived  int    `json:"recordsReceived"`
	AnalysisIncluded bool   `json:"pytorchAnalysisIncluded"`
	RiskLevel        string `json:"riskLevel"`
	Timestamp        string `json:"timestamp"`
}
