package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
)

const ghApiServer = "https://api.github.com"

type Repo struct {
	FullName string `json:"full_name"`
	Name     string `json:"name"`
}

type Release struct {
	URL             string  `json:"url"`
	TagName         string  `json:"tag_name"`
	TargetCommitish string  `json:"target_commitish"` // the branch of the release
	CreatedAt       string  `json:"created_at"`
	Assets          []Asset `json:"assets"`
}

type Asset struct {
	URL                string `json:"url"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Name               string `json:"name"`
}

type ghApiClient struct {
	baseURL    string
	httpClient *http.Client
}

var ghDefaultClient = ghApiClient{ghApiServer, &http.Client{}}

func (c ghApiClient) makeGet(url string) (*http.Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", core.UserAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	if token := config.GetGhApiKey(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == 403 {
		if remaining, err := strconv.Atoi(resp.Header.Get("x-ratelimit-remaining")); err == nil && remaining <= 0 {
			_ = resp.Body.Close()
			if reset, err := strconv.ParseInt(resp.Header.Get("x-ratelimit-reset"), 10, 64); err == nil {
				return nil, fmt.Errorf("GitHub API rate limit exceeded, resets %s", time.Unix(reset, 0).Format(time.RFC1123))
			}
			return nil, errors.New("GitHub API rate limit exceeded, set a token with 'lodestone settings set gh-api-key' to raise it")
		}
	}

	if resp.StatusCode != 200 {
		_ = resp.Body.Close()
		return nil, errors.New("invalid response status: " + resp.Status)
	}

	return resp, nil
}

func (c ghApiClient) getRepo(slug string) (*http.Response, error) {
	return c.makeGet(c.baseURL + "/repos/" + slug)
}

func (c ghApiClient) getReleases(slug string) (*http.Response, error) {
	return c.getRepo(slug + "/releases")
}

func fetchRepo(slug string) (Repo, error) {
	var repo Repo

	resp, err := ghDefaultClient.getRepo(slug)
	if err != nil {
		return repo, err
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return repo, err
	}

	err = json.Unmarshal(body, &repo)
	if err != nil {
		return repo, err
	}

	return repo, nil
}

// getSha256 downloads the asset once to pin its hash. GitHub release APIs
// don't expose file digests.
func (a Asset) getSha256() (string, error) {
	return fetchSha256(a.BrowserDownloadURL)
}

func fetchSha256(url string) (string, error) {
	stringer, err := core.GetHashImpl("sha256")
	if err != nil {
		return "", err
	}

	resp, err := core.GetWithUA(url, "application/octet-stream")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("invalid response status %v for %s", resp.Status, url)
	}

	if _, err := io.Copy(stringer, resp.Body); err != nil {
		return "", err
	}

	return stringer.String(), nil
}
