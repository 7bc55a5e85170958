// seed_assessments.go posts sample applicant records to a running CreditScore API.
//
// Usage:
//
//	go run scripts/seed_assessments.go -file scripts/applicants.yaml -api http://localhost:8700
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type applicant struct {
	ApplicantID string                 `yaml:"applicant_id" json:"applicant_id"`
	Reference   string                 `yaml:"reference" json:"reference,omitempty"`
	Input       map[string]interface{} `yaml:"input" json:"input"`
}

type seedFile struct {
	Applicants []applicant `yaml:"applicants"`
}

type assessmentResponse struct {
	ID         string  `json:"assessment_id"`
	TotalScore float64 `json:"total_score"`
	RiskBand   string  `json:"risk_band"`
	Decision   string  `json:"decision"`
	Error      string  `json:"error"`
	Field      string  `json:"field"`
}

func main() {
	path := flag.String("file", "scripts/applicants.yaml", "path to applicants YAML file")
	apiURL := flag.String("api", "http://localhost:8700", "CreditScore API base URL")
	source := flag.String("source", "seed", "source recorded on each assessment")
	dryRun := flag.Bool("dry-run", false, "print applicants without posting")
	flag.Parse()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("read %s: %v", *path, err)
	}
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("parse %s: %v", *path, err)
	}

	log.Printf("parsed %d applicants from %s", len(seed.Applicants), *path)

	if *dryRun {
		for i, a := range seed.Applicants {
			fmt.Printf("[%d] %s (reference=%s, fields=%d)\n", i+1, a.ApplicantID, a.Reference, len(a.Input))
		}
		return
	}

	client := &http.Client{Timeout: 10 * time.Second}
	created, skipped := 0, 0
	for _, a := range seed.Applicants {
		body, err := json.Marshal(map[string]interface{}{
			"applicant_id": a.ApplicantID,
			"reference":    a.Reference,
			"source":       *source,
			"input":        a.Input,
		})
		if err != nil {
			log.Printf("skip %q: %v", a.ApplicantID, err)
			skipped++
			continue
		}

		resp, err := client.Post(*apiURL+"/api/v1/assessments", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("skip %q: %v", a.ApplicantID, err)
			skipped++
			continue
		}
		var out assessmentResponse
		_ = json.NewDecoder(resp.Body).Decode(&out)
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			log.Printf("skip %q: status %d: %s %s", a.ApplicantID, resp.StatusCode, out.Error, out.Field)
			skipped++
			continue
		}
		created++
		fmt.Printf("%s  %-12s %5.1f  %-6s %s\n", out.ID, a.ApplicantID, out.TotalScore, out.RiskBand, out.Decision)
	}

	log.Printf("done: %d created, %d skipped", created, skipped)
}
