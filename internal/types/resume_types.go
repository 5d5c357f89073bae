package types

import "time"

// SkillFinding 一个技能类别及其命中的技能列表
type SkillFinding struct {
	Category  string   `json:"category"`
	TechStack []string `json:"tech_stack"`
}

// ExperienceEntry 一条工作经历
// Company 与 Position 均非空时才会被提交到结果列表
type ExperienceEntry struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Duration string `json:"duration"`
	Location string `json:"location"`
}

// Resume 单次简历提取的聚合结果
type Resume struct {
	ID         string                 // 本次处理的运行ID
	SourcePath string                 // 源PDF路径
	OutputPath string                 // 提取文本写入的文件路径，未写入时为空
	Text       string                 // 清洗后的正文
	Name       string                 // 姓名
	Email      string                 // 邮箱
	Phone      string                 // 电话
	Skills     []SkillFinding         // 技能
	Experience []ExperienceEntry      // 工作经历
	Summary    string                 // 生成的个人摘要
	Metadata   map[string]interface{} // 提取元数据
	Warnings   []string               // 非致命的降级信息
	Duration   time.Duration          // 总耗时
}

// HasSkills 是否命中了真实技能（排除哨兵类别）
func (r *Resume) HasSkills() bool {
	for _, f := range r.Skills {
		if len(f.TechStack) > 0 {
			return true
		}
	}
	return false
}
