package clients

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"fihealth/internal/providers"
	"fihealth/internal/structures"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"
)

const jenkinsBuildsTree = "builds[number,building,actions[parameters[name,value]]]"

type JenkinsClientInterface interface {
	// JobsInProgress maps a region to true when a sanity build for it is still running.
	JobsInProgress(ctx context.Context) (map[string]bool, error)
}

type JenkinsClient struct {
	conf   *structures.JenkinsConfig
	logger providers.Logger
	client *retryablehttp.Client
	url    string
}

func NewJenkinsClient(conf *structures.Config, logger providers.Logger) JenkinsClientInterface {
	if !conf.Jenkins.Enabled {
		return &noopJenkins{}
	}
	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = 1
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &JenkinsClient{
		conf:   &conf.Jenkins,
		logger: logger,
		client: client,
		url: structures.BaseURL(conf.Jenkins.Host, conf.Jenkins.Port) +
			"/job/" + url.PathEscape(conf.Jenkins.Job) + "/api/json?tree=" + url.QueryEscape(jenkinsBuildsTree),
	}
}

func (j *JenkinsClient) JobsInProgress(ctx context.Context) (map[string]bool, error) {
	txid := providers.TransactionID(ctx)
	if j.conf.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.conf.Timeout)
		defer cancel()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, j.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := j.client.Do(req)
	if err != nil {
		j.logger.Errorf(providers.TypeApp, "[%s] Failed to get information for job %s: %s", txid, j.conf.Job, err)
		return nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		j.logger.Errorf(providers.TypeApp, "[%s] Jenkins answered %d for job %s", txid, resp.StatusCode, j.conf.Job)
		return nil, statusError(resp.StatusCode)
	}
	if !gjson.ValidBytes(data) {
		return nil, ErrUpstreamMalformed
	}

	progress := ParseBuildProgress(data, j.conf.ParameterName)
	j.logger.Debugf(providers.TypeApp, "[%s] Progress status=%v", txid, progress)
	return progress, nil
}

// ParseBuildProgress reads the builds of a job info document. A region is in
// progress if any of its builds is still building.
func ParseBuildProgress(data []byte, paramName string) map[string]bool {
	progress := make(map[string]bool)
	gjson.GetBytes(data, "builds").ForEach(func(_, build gjson.Result) bool {
		region := ""
		build.Get("actions").ForEach(func(_, action gjson.Result) bool {
			action.Get("parameters").ForEach(func(_, param gjson.Result) bool {
				if param.Get("name").String() == paramName {
					region = param.Get("value").String()
					return false
				}
				return true
			})
			return region == ""
		})
		if region != "" {
			progress[region] = progress[region] || build.Get("building").Bool()
		}
		return true
	})
	return progress
}

type noopJenkins struct{}

func (n *noopJenkins) JobsInProgress(_ context.Context) (map[string]bool, error) {
	return map[string]bool{}, nil
}
