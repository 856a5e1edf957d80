package adapters

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"

	"github.com/kbukum/middlewarekit/request"
	"github.com/kbukum/middlewarekit/validation"
	"github.com/kbukum/middlewarekit/version"
)

type headerSettings struct {
	Name  string `mapstructure:"name" validate:"required"`
	Value string `mapstructure:"value" validate:"required"`
}

type headersSettings struct {
	Values map[string]string `mapstructure:"values" validate:"required,min=1"`
}

type userAgentSettings struct {
	Value string `mapstructure:"value"`
}

type requestIDSettings struct {
	Header string `mapstructure:"header"`
}

type allowMethodsSettings struct {
	Methods []string `mapstructure:"methods" validate:"required,min=1,dive,required"`
}

func init() {
	request.RegisterAdapter("header", func(settings map[string]any) (request.Adapter, error) {
		var s headerSettings
		if err := decodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return Header(s.Name, s.Value), nil
	})
	request.RegisterAdapter("headers", func(settings map[string]any) (request.Adapter, error) {
		var s headersSettings
		if err := decodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return Headers(s.Values), nil
	})
	request.RegisterAdapter("user_agent", func(settings map[string]any) (request.Adapter, error) {
		var s userAgentSettings
		if err := decodeSettings(settings, &s); err != nil {
			return nil, err
		}
		if s.Value == "" {
			s.Value = version.UserAgent()
		}
		return UserAgent(s.Value), nil
	})
	request.RegisterAdapter("request_id", func(settings map[string]any) (request.Adapter, error) {
		var s requestIDSettings
		if err := decodeSettings(settings, &s); err != nil {
			return nil, err
		}
		if s.Header == "" {
			return RequestID(), nil
		}
		return RequestIDHeader(s.Header), nil
	})
	request.RegisterAdapter("propagate_trace", withoutSettings(PropagateTrace))
	request.RegisterAdapter("service_token", func(settings map[string]any) (request.Adapter, error) {
		var cfg TokenConfig
		if err := decodeSettings(settings, &cfg); err != nil {
			return nil, err
		}
		return ServiceToken(cfg)
	})
	request.RegisterAdapter("validate_body", withoutSettings(ValidateBody))
	request.RegisterAdapter("allow_methods", func(settings map[string]any) (request.Adapter, error) {
		var s allowMethodsSettings
		if err := decodeSettings(settings, &s); err != nil {
			return nil, err
		}
		return AllowMethods(s.Methods...), nil
	})
	request.RegisterAdapter("log", withoutSettings(func() request.Adapter { return Log(nil) }))
}

// withoutSettings wraps a constructor that takes no settings; any key given is an error.
func withoutSettings(newAdapter func() request.Adapter) request.AdapterFactory {
	return func(settings map[string]any) (request.Adapter, error) {
		if err := decodeSettings(settings, &struct{}{}); err != nil {
			return nil, err
		}
		return newAdapter(), nil
	}
}

// decodeSettings decodes loosely typed settings into out, rejecting unknown
// keys, then runs struct validation.
func decodeSettings(settings map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("settings decoder: %w", err)
	}
	if err := dec.Decode(settings); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	return validation.Validate(out)
}
