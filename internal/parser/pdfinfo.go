package parser

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// DocumentInfo pdfcpu 探测到的文档结构信息
type DocumentInfo struct {
	PageCount int
	HasImages bool
}

// InspectDocument 校验PDF结构并读取页数，只用于元数据，失败不影响文本提取
func InspectDocument(path string) (info DocumentInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdfcpu inspection panicked: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return DocumentInfo{}, err
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return DocumentInfo{}, fmt.Errorf("pdfcpu read: %w", err)
	}

	return DocumentInfo{
		PageCount: ctx.PageCount,
		HasImages: hasImageStreams(ctx),
	}, nil
}

// hasImageStreams 文档中是否含有图片对象，扫描件通常没有文本层
func hasImageStreams(ctx *model.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}
