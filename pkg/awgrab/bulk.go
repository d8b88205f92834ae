package awgrab

import (
	"context"
	"errors"

	"k8s.io/klog/v2"
)

// TargetResult is the outcome of one DELETE attempt.
type TargetResult struct {
	URL    string
	OK     bool
	Status int
	Body   string
	Err    string
}

// BulkResult aggregates a batch delete. OK is true only when every target
// succeeded; Results holds one entry per target, in input order.
type BulkResult struct {
	OK      bool
	Results []TargetResult
}

// DeleteTargets removes each URL independently: one target's failure is
// recorded and never stops the rest, the opposite policy from archive
// assembly. forceSlash is set for folder targets, which the device only
// accepts in slash-terminated form; photo targets pass through as-is.
func (c *Client) DeleteTargets(ctx context.Context, urls []string, headers map[string]string, forceSlash bool) (*BulkResult, error) {
	if len(urls) == 0 {
		return nil, ErrNoTargets
	}

	res := &BulkResult{OK: true}
	for _, u := range urls {
		target := u
		if forceSlash {
			target = EnsureSlash(target)
		}

		tr := TargetResult{URL: target}
		status, body, err := c.Delete(ctx, target, headers)
		tr.Status = status

		switch {
		case err == nil:
			tr.OK = true
			klog.Infof("deleted %s", target)
		default:
			var rfe *RemoteFetchError
			if errors.As(err, &rfe) {
				tr.Body = body
			} else {
				tr.Err = err.Error()
			}
			res.OK = false
			klog.Warningf("delete %s failed: %v", target, err)
		}

		res.Results = append(res.Results, tr)
	}

	return res, nil
}
