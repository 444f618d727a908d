package providers

import (
	"errors"
	"fmt"
	"strings"

	"fihealth/internal/structures"

	"github.com/gookit/validate"
)

type CnfValidatorInterface interface {
	Validate() error
}

type CnfValidator struct {
	conf *structures.Config
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %w", v.Errors)
	}

	ctx := cv.conf.App.WebContext
	if !strings.HasPrefix(ctx, "/") || !strings.HasSuffix(ctx, "/") {
		return errors.New("invalid configuration: app.webContext must start and end with '/'")
	}

	for _, entry := range cv.conf.IDM.RegionsAuthorized {
		if len(entry) != 1 {
			return errors.New("invalid configuration: each idm.regionsAuthorized entry must hold exactly one region")
		}
	}

	if cv.conf.Jenkins.Enabled && (cv.conf.Jenkins.Host == "" || cv.conf.Jenkins.Job == "" || cv.conf.Jenkins.ParameterName == "") {
		return errors.New("invalid configuration: jenkins requires host, job and parameterName when enabled")
	}
	return nil
}

func NewCnfValidator(conf *structures.Config) CnfValidatorInterface {
	return &CnfValidator{conf: conf}
}
