package constants

const (
	// Application-level constants
	AppName    = "resume-extractor"
	AppVersion = "1.0.0"

	// 输出文件相关
	ExtractedTextSuffix = "_extracted"
	ExtractedTextExt    = ".txt"

	// 经历条目占位符
	DurationNotSpecified = "Duration not specified"
	LocationNotSpecified = "Location not specified"

	// 姓名占位符
	DefaultCandidateName = "Candidate Name"

	// 技能哨兵类别
	NoSkillsFound        = "No skills found"
	ErrorExtractingSkill = "Error extracting skills"

	// 摘要哨兵文本
	NoSummaryInformation = "No information available to generate summary"
	ErrorGeneratingSum   = "Error generating summary"

	// 文本提取方式
	ExtractionMethodLayout = "layout"
	ExtractionMethodBasic  = "basic"

	// 默认技能上下文窗口大小（前后各 N 个词）
	DefaultContextWindow = 5
	// 技能章节标题之后扫描的行数
	SkillSectionLineSpan = 20
)
