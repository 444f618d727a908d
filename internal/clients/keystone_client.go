package clients

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"fihealth/internal/providers"
	"fihealth/internal/structures"

	json "github.com/goccy/go-json"
)

const SubjectTokenHeader = "X-Subject-Token"

var ErrTokenMissing = errors.New("keystone response carries no subject token")

type KeystoneClientInterface interface {
	Token(ctx context.Context) (string, error)
}

type KeystoneClient struct {
	conf   *structures.MonascaConfig
	logger providers.Logger
	client *http.Client
	url    string
}

type keystoneUser struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Domain   struct {
		ID string `json:"id"`
	} `json:"domain"`
}

type keystoneAuthRequest struct {
	Auth struct {
		Identity struct {
			Methods  []string `json:"methods"`
			Password struct {
				User keystoneUser `json:"user"`
			} `json:"password"`
		} `json:"identity"`
	} `json:"auth"`
}

func NewKeystoneClient(conf *structures.Config, logger providers.Logger) KeystoneClientInterface {
	return &KeystoneClient{
		conf:   &conf.Monasca,
		logger: logger,
		client: &http.Client{},
		url:    structures.BaseURL(conf.Monasca.KeystoneHost, conf.Monasca.KeystonePort) + conf.Monasca.KeystonePath,
	}
}

func (k *KeystoneClient) payload() ([]byte, error) {
	var req keystoneAuthRequest
	req.Auth.Identity.Methods = []string{"password"}
	req.Auth.Identity.Password.User.Name = k.conf.KeystoneUser
	req.Auth.Identity.Password.User.Password = k.conf.KeystonePass
	req.Auth.Identity.Password.User.Domain.ID = "default"
	return json.Marshal(&req)
}

// Token requests a password-scoped token. Only a 201 with X-Subject-Token counts as success.
func (k *KeystoneClient) Token(ctx context.Context) (string, error) {
	txid := providers.TransactionID(ctx)
	body, err := k.payload()
	if err != nil {
		return "", err
	}

	if k.conf.KeystoneTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, k.conf.KeystoneTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := k.client.Do(req)
	if err != nil {
		if IsTimeout(err) {
			k.logger.Errorf(providers.TypeFanout, "[%s] Request to Keystone TIMEOUT: %s", txid, err)
		} else {
			k.logger.Errorf(providers.TypeFanout, "[%s] Request to Keystone failed: %s", txid, err)
		}
		return "", wrapTransportError(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusCreated {
		k.logger.Errorf(providers.TypeFanout, "[%s] Keystone answered %d", txid, resp.StatusCode)
		return "", statusError(resp.StatusCode)
	}
	token := resp.Header.Get(SubjectTokenHeader)
	if token == "" {
		return "", ErrTokenMissing
	}
	return token, nil
}
