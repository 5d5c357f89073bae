// Package taxonomy 加载并持有技能分类表：类别 -> 技能列表，可按子类别嵌套一层。
// 加载完成后只读，可被多个goroutine并发读取。
package taxonomy

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// 保留键：不参与类别匹配，只用于摘要中的技能分组
const (
	KeyTechnicalSkills = "technical_skills"
	KeyBusinessSkills  = "business_skills"
	KeySoftSkills      = "soft_skills"
)

// SkillClass 摘要使用的技能大类
type SkillClass int

const (
	ClassNone SkillClass = iota
	ClassTechnical
	ClassBusiness
	ClassSoft
)

// String 返回大类对应的保留键
func (c SkillClass) String() string {
	switch c {
	case ClassTechnical:
		return KeyTechnicalSkills
	case ClassBusiness:
		return KeyBusinessSkills
	case ClassSoft:
		return KeySoftSkills
	default:
		return "none"
	}
}

// Category 一个可匹配的技能类别，嵌套类别的 Name 为 "类别 - 子类别"
type Category struct {
	Name        string
	Parent      string
	Subcategory string
	Skills      []string
}

// Taxonomy 技能分类表
type Taxonomy struct {
	path       string
	categories []Category
	classes    map[SkillClass]map[string]struct{}
}

// Empty 返回一个不含任何类别的分类表，加载失败时使用
func Empty() *Taxonomy {
	return &Taxonomy{
		classes: map[SkillClass]map[string]struct{}{},
	}
}

// Load 从文件加载分类表，JSON 与 YAML 均可
func Load(path string) (*Taxonomy, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newError(path, "stat", ErrMissingFile, "")
		}
		return nil, newError(path, "stat", err, "")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(path, "read", err, "")
	}

	t, err := Parse(data)
	if err != nil {
		var te *Error
		if errors.As(err, &te) {
			te.Path = path
			return nil, te
		}
		return nil, newError(path, "parse", err, "")
	}
	t.path = path
	return t, nil
}

// Parse 从内存数据解析分类表，保留文件中的类别顺序
func Parse(data []byte) (*Taxonomy, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, newError("", "parse", ErrMalformedTaxonomy, err.Error())
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, newError("", "parse", ErrMalformedTaxonomy, "empty document")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, newError("", "parse", ErrMalformedTaxonomy, "top level must be a mapping")
	}

	t := Empty()
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i].Value
		value := doc.Content[i+1]

		if class := reservedClass(key); class != ClassNone {
			skills, err := decodeSkills(key, value)
			if err != nil {
				return nil, err
			}
			set := make(map[string]struct{}, len(skills))
			for _, s := range skills {
				set[strings.ToLower(s)] = struct{}{}
			}
			t.classes[class] = set
			continue
		}

		switch value.Kind {
		case yaml.SequenceNode:
			skills, err := decodeSkills(key, value)
			if err != nil {
				return nil, err
			}
			t.add(Category{Name: key, Skills: skills})
		case yaml.MappingNode:
			for j := 0; j+1 < len(value.Content); j += 2 {
				sub := value.Content[j].Value
				skills, err := decodeSkills(key+" - "+sub, value.Content[j+1])
				if err != nil {
					return nil, err
				}
				t.add(Category{
					Name:        fmt.Sprintf("%s - %s", key, sub),
					Parent:      key,
					Subcategory: sub,
					Skills:      skills,
				})
			}
		default:
			return nil, newError("", "parse", ErrMalformedTaxonomy,
				fmt.Sprintf("category %q must map to a list or a mapping of lists", key))
		}
	}
	return t, nil
}

func reservedClass(key string) SkillClass {
	switch strings.ToLower(key) {
	case KeyTechnicalSkills:
		return ClassTechnical
	case KeyBusinessSkills:
		return ClassBusiness
	case KeySoftSkills:
		return ClassSoft
	}
	return ClassNone
}

// decodeSkills 解析技能列表，按大小写不敏感去重，保留首次出现的写法
func decodeSkills(category string, node *yaml.Node) ([]string, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, newError("", "parse", ErrMalformedTaxonomy,
			fmt.Sprintf("category %q must be a list of skills", category))
	}

	seen := make(map[string]bool, len(node.Content))
	skills := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return nil, newError("", "parse", ErrMalformedTaxonomy,
				fmt.Sprintf("category %q contains a non-string skill at line %d", category, item.Line))
		}
		skill := strings.TrimSpace(item.Value)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, skill)
	}
	return skills, nil
}

func (t *Taxonomy) add(c Category) {
	t.categories = append(t.categories, c)
}

// Path 分类表来源文件，内存解析时为空
func (t *Taxonomy) Path() string {
	return t.path
}

// Categories 返回全部可匹配类别，调用方不得修改
func (t *Taxonomy) Categories() []Category {
	return t.categories
}

// Len 可匹配类别数
func (t *Taxonomy) Len() int {
	return len(t.categories)
}

// SkillCount 可匹配技能总数（按类别累计）
func (t *Taxonomy) SkillCount() int {
	n := 0
	for _, c := range t.categories {
		n += len(c.Skills)
	}
	return n
}

// ClassOf 技能在摘要中所属的大类，依次检查技术、业务、软技能列表
func (t *Taxonomy) ClassOf(skill string) SkillClass {
	key := strings.ToLower(strings.TrimSpace(skill))
	for _, class := range []SkillClass{ClassTechnical, ClassBusiness, ClassSoft} {
		if _, ok := t.classes[class][key]; ok {
			return class
		}
	}
	return ClassNone
}

// HasClasses 是否提供了任一保留键列表
func (t *Taxonomy) HasClasses() bool {
	return len(t.classes) > 0
}
