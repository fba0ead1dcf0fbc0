package batch

// ExpectedFlowFeatures is the allowlist of per-flow feature names the
// client's on-device model is expected to export. Presence only; type
// and range are never checked.
var ExpectedFlowFeatures = []string{
	"totalFwdPackets", "totalBwdPackets", "totalLengthFwdPackets", "totalLengthBwdPackets",
	"fwdPacketLengthMax", "fwdPacketLengthMean", "fwdPacketLengthStd",
	"bwdPacketLengthMax", "bwdPacketLengthMin", "bwdPacketLengthMean", "bwdPacketLengthStd",
	"flowBytesPerSecond", "flowPacketsPerSecond", "flowIATMean", "flowIATStd",
	"flowIATMax", "flowIATMin", "fwdIATMean", "fwdIATStd", "fwdIATMax", "fwdIATMin",
	"bwdIATMean", "bwdIATStd", "bwdIATMax", "bwdIATMin", "minPacketLength", "maxPacketLength",
	"packetLengthMean", "packetLengthStd", "fwdPacketsPerSecond", "bwdPacketsPerSecond",
}

// MissingFeatures reports which expected feature names are absent from
// a flow record, in allowlist order.
func MissingFeatures(flow Document) []string {
	var missing []string
	for _, name := range ExpectedFlowFeatures {
		if !flow.Has(name) {
			missing = append(missing, name)
		}
	}
	return missing
}
