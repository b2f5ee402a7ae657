package pipeline

// Diagnostics keys published to the dashboard table.
const (
	KeyDirection     = "Direction"
	KeyDistance      = "Distance"
	KeyArea          = "Area"
	KeyFullness      = "Fullness"
	KeyAspect        = "Aspect"
	KeyTargetVisible = "TargetVisible"
	KeyCandidates    = "Candidates"
	KeyCenterC1      = "CenterC1"
	KeyCenterC2      = "CenterC2"
	KeyCenterC3      = "CenterC3"
	KeyColor         = "Color"
	KeyColorIdx      = "ColorIdx"
	KeyColorArea     = "ColorArea"
	KeyPipelineCalls = "PipelineCalls"

	KeyPipelineCPS           = "PipelineCPS"
	KeyPipelineLatencyMeanMs = "PipelineLatencyMeanMs"
	KeyPipelineLatencyStdMs  = "PipelineLatencyStdMs"
	KeyRunID                 = "RunID"
)

// DiagnosticsKeys lists every key the pipeline and reporter write.
var DiagnosticsKeys = []string{
	KeyDirection, KeyDistance, KeyArea, KeyFullness, KeyAspect, KeyTargetVisible,
	KeyCandidates, KeyCenterC1, KeyCenterC2, KeyCenterC3, KeyColor, KeyColorIdx,
	KeyColorArea, KeyPipelineCalls, KeyPipelineCPS, KeyPipelineLatencyMeanMs,
	KeyPipelineLatencyStdMs, KeyRunID,
}

// Diagnostics receives published values. *dashboard.Table implements it.
type Diagnostics interface {
	PutNumber(key string, value float64)
	PutString(key, value string)
}
