package cve

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Details is the normalized view of an NVD CVE record.
type Details struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Score       string `json:"score"`
	Vector      string `json:"vector"`
	Published   string `json:"published"`
	Updated     string `json:"updated"`
}

// Client looks up CVE details in the NVD 2.0 API.
type Client struct {
	client *resty.Client
}

// NewClient creates an NVD API client.
func NewClient() *Client {
	return &Client{
		client: resty.New().
			SetTimeout(10 * time.Second).
			SetBaseURL("https://services.nvd.nist.gov/rest/json/cves/2.0"),
	}
}

type nvdResponse struct {
	Vulnerabilities []struct {
		CVE struct {
			Descriptions []struct {
				Lang  string `json:"lang"`
				Value string `json:"value"`
			} `json:"descriptions"`
			Metrics struct {
				CVSSMetricV31 []nvdMetric `json:"cvssMetricV31"`
				CVSSMetricV30 []nvdMetric `json:"cvssMetricV30"`
				CVSSMetricV2  []nvdMetric `json:"cvssMetricV2"`
			} `json:"metrics"`
			Published    string `json:"published"`
			LastModified string `json:"lastModified"`
		} `json:"cve"`
	} `json:"vulnerabilities"`
}

type nvdMetric struct {
	CVSSData struct {
		BaseScore    float64 `json:"baseScore"`
		VectorString string  `json:"vectorString"`
		BaseSeverity string  `json:"baseSeverity"`
	} `json:"cvssData"`
}

// Fetch returns the details for cveID. Lookup failures (network errors,
// unknown ids, malformed responses) degrade to the empty-details record;
// the caller always gets something presentable.
func (c *Client) Fetch(ctx context.Context, cveID string) Details {
	var body nvdResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("cveId", cveID).
		SetResult(&body).
		Get("")
	if err != nil {
		logrus.Warnf("CVE lookup for %s failed: %v", cveID, err)
		return emptyDetails(cveID)
	}
	if resp.StatusCode() != 200 || len(body.Vulnerabilities) == 0 {
		logrus.Warnf("CVE lookup for %s returned status %d with %d records", cveID, resp.StatusCode(), len(body.Vulnerabilities))
		return emptyDetails(cveID)
	}

	record := body.Vulnerabilities[0].CVE
	details := emptyDetails(cveID)

	for _, d := range record.Descriptions {
		if d.Lang == "en" || details.Description == "No description available." {
			details.Description = d.Value
		}
		if d.Lang == "en" {
			break
		}
	}

	// CVSS v3.1 preferred, then v3.0, then v2 with derived severity
	metrics := record.Metrics
	switch {
	case len(metrics.CVSSMetricV31) > 0:
		details.applyMetric(metrics.CVSSMetricV31[0], "")
	case len(metrics.CVSSMetricV30) > 0:
		details.applyMetric(metrics.CVSSMetricV30[0], "")
	case len(metrics.CVSSMetricV2) > 0:
		m := metrics.CVSSMetricV2[0]
		details.applyMetric(m, scoreToSeverity(m.CVSSData.BaseScore))
	}

	if record.Published != "" {
		details.Published = record.Published
	}
	if record.LastModified != "" {
		details.Updated = record.LastModified
	}

	return details
}

func (d *Details) applyMetric(m nvdMetric, severityOverride string) {
	d.Score = formatScore(m.CVSSData.BaseScore)
	d.Vector = m.CVSSData.VectorString
	if severityOverride != "" {
		d.Severity = severityOverride
	} else if m.CVSSData.BaseSeverity != "" {
		d.Severity = m.CVSSData.BaseSeverity
	}
}

func emptyDetails(cveID string) Details {
	return Details{
		ID:          cveID,
		Description: "No description available.",
		Severity:    "N/A",
		Score:       "N/A",
		Vector:      "N/A",
		Published:   "N/A",
		Updated:     "N/A",
	}
}

func scoreToSeverity(score float64) string {
	switch {
	case score >= 9:
		return "Critical"
	case score >= 7:
		return "High"
	case score >= 4:
		return "Medium"
	default:
		return "Low"
	}
}

func formatScore(score float64) string {
	if score == 0 {
		return "N/A"
	}
	return trimFloat(score)
}
