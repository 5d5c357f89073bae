package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"resume-extractor/internal/constants"
	"resume-extractor/internal/types"
)

const rule = "=================================================="

// printReport 以纯文本打印一份简历的提取结果
func printReport(w io.Writer, r *types.Resume, showText bool) {
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "File: %s\n", r.SourcePath)
	fmt.Fprintln(w, rule)

	fmt.Fprintln(w, "\n----- Personal Information -----")
	fmt.Fprintf(w, "Name:  %s\n", r.Name)
	fmt.Fprintf(w, "Email: %s\n", orDash(r.Email))
	fmt.Fprintf(w, "Phone: %s\n", orDash(r.Phone))

	fmt.Fprintln(w, "\n----- Skills -----")
	if !r.HasSkills() {
		// 哨兵类别原样输出
		status := constants.NoSkillsFound
		if len(r.Skills) > 0 && r.Skills[0].Category != "" {
			status = r.Skills[0].Category
		}
		fmt.Fprintln(w, status)
	}
	for _, f := range r.Skills {
		if len(f.TechStack) > 0 {
			fmt.Fprintf(w, "%s: %s\n", f.Category, strings.Join(f.TechStack, ", "))
		}
	}

	fmt.Fprintln(w, "\n----- Experience -----")
	if len(r.Experience) == 0 {
		fmt.Fprintln(w, "No experience entries found")
	}
	for i, e := range r.Experience {
		fmt.Fprintf(w, "%d. %s at %s\n", i+1, e.Position, e.Company)
		fmt.Fprintf(w, "   Duration: %s\n", e.Duration)
		fmt.Fprintf(w, "   Location: %s\n", e.Location)
	}

	fmt.Fprintln(w, "\n----- Summary -----")
	fmt.Fprintln(w, r.Summary)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\n----- Warnings -----")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "- %s\n", warning)
		}
	}

	if showText {
		fmt.Fprintf(w, "\n----- Extracted Text (%d chars) -----\n", len(r.Text))
		fmt.Fprintln(w, r.Text)
	}

	if r.OutputPath != "" {
		fmt.Fprintf(w, "\nExtracted text saved to: %s\n", r.OutputPath)
	}
	fmt.Fprintf(w, "Processed in %s (run %s)\n", r.Duration.Round(time.Millisecond), r.ID)
}

// printFailure 打印单个文件的失败原因
func printFailure(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "Failed to process %s: %v\n", path, err)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
