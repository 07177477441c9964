package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/placemate/placemate/util"
)

const remotiveURL = "https://remotive.com/api/remote-jobs"

// Job is the trimmed listing shape the frontend consumes.
type Job struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Date     string `json:"date"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

type remotiveResponse struct {
	Jobs []struct {
		ID                        uint   `json:"id"`
		Title                     string `json:"title"`
		CompanyName               string `json:"company_name"`
		CandidateRequiredLocation string `json:"candidate_required_location"`
		PublicationDate           string `json:"publication_date"`
		URL                       string `json:"url"`
		Category                  string `json:"category"`
	} `json:"jobs"`
}

// @Summary		Search job listings
// @Description	Proxy a search against the public Remotive job board
// @Tags			jobs
// @Param			q		query	string	false	"search text"
// @Param			limit	query	int		false	"max results"
// @Produce		json
// @Success		200	{array}		Job
// @Failure		500	{object}	util.ApiError
// @Router			/jobs [get]
func GetJobsHandler(res http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		util.WriteError(res, http.StatusMethodNotAllowed, "invalid method")
		return
	}

	search := req.URL.Query().Get("q")
	if search == "" {
		search = "software engineer"
	}
	limit := 10
	if raw := req.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	client := resty.New().SetTimeout(10 * time.Second)
	var payload remotiveResponse
	resp, err := client.R().
		SetQueryParam("search", search).
		SetResult(&payload).
		Get(remotiveURL)
	if err != nil || resp.IsError() {
		slog.Error("remotive request failed", "err", err, "status", resp.StatusCode())
		util.WriteError(res, http.StatusInternalServerError, "failed to fetch jobs")
		return
	}

	jobs := make([]Job, 0, limit)
	for _, j := range payload.Jobs {
		if len(jobs) == limit {
			break
		}
		location := j.CandidateRequiredLocation
		if location == "" {
			location = "Remote"
		}
		category := j.Category
		if category == "" {
			category = "General"
		}
		jobs = append(jobs, Job{
			ID:       j.ID,
			Title:    j.Title,
			Company:  j.CompanyName,
			Location: location,
			Date:     j.PublicationDate,
			URL:      j.URL,
			Category: category,
		})
	}
	util.WriteData(res, http.StatusOK, jobs)
}
