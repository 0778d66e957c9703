// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/chain4travel/nance/api/server"
	"github.com/chain4travel/nance/chains"
	"github.com/chain4travel/nance/ipfs"
	"github.com/chain4travel/nance/portal"
	"github.com/chain4travel/nance/safe"
	"github.com/chain4travel/nance/trace"
	"github.com/chain4travel/nance/utils/logging"
)

// EnvPrefix is prepended to the upper snake case flag name of environment
// variables, NANCE_SNAPSHOT_API_KEY sets --snapshot-api-key.
const EnvPrefix = "NANCE"

var (
	errInvalidSampleRate = errors.New("tracing sample rate must be within [0, 1]")
	errInvalidRateLimit  = errors.New("explorer rate limit must be positive")
	errMissingEndpoint   = errors.New("missing endpoint")
)

type Config struct {
	Logging          logging.Config `json:"logging"`
	Tracing          trace.Config   `json:"tracing"`
	Server           server.Config  `json:"server"`
	Portal           portal.Config  `json:"portal"`
	Clients          ClientsConfig  `json:"clients"`
	MetricsNamespace string         `json:"metricsNamespace"`
	// Never serialized
	PrivateKey string `json:"-"`
}

// ClientsConfig holds the endpoints of the external services
type ClientsConfig struct {
	NanceAPI          string           `json:"nanceAPI"`
	SnapshotHub       string           `json:"snapshotHub"`
	SnapshotAPIKey    string           `json:"-"`
	Chain             chains.Chain     `json:"chain"`
	RPCURL            string           `json:"rpcURL"`
	ExplorerAPI       string           `json:"explorerAPI"`
	ExplorerAPIKey    string           `json:"-"`
	ExplorerRateLimit float64          `json:"explorerRateLimit"`
	JuiceboxAPI       string           `json:"juiceboxAPI"`
	SafeAPI           string           `json:"safeAPI"`
	IPFSAPI           string           `json:"ipfsAPI"`
	IPFSGateway       string           `json:"ipfsGateway"`
	IPFSCredentials   ipfs.Credentials `json:"-"`
}

// NewViper binds [fs] and the NANCE_ environment variables, then reads the
// config file when one is given.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if configFile := v.GetString(ConfigFileKey); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("couldn't read config file %s: %w", configFile, err)
		}
	}
	return v, nil
}

func getLoggingConfig(v *viper.Viper) logging.Config {
	return logging.Config{
		Level:     v.GetString(LogLevelKey),
		Format:    v.GetString(LogFormatKey),
		Directory: v.GetString(LogDirKey),
		MaxSize:   v.GetInt(LogMaxSizeKey),
		MaxFiles:  v.GetInt(LogMaxFilesKey),
		MaxAge:    v.GetInt(LogMaxAgeKey),
		Compress:  v.GetBool(LogCompressKey),
	}
}

func getTracingConfig(v *viper.Viper) (trace.Config, error) {
	config := trace.Config{
		Enabled:         v.GetBool(TracingEnabledKey),
		Endpoint:        v.GetString(TracingEndpointKey),
		Headers:         v.GetStringMapString(TracingHeadersKey),
		Insecure:        v.GetBool(TracingInsecureKey),
		TraceSampleRate: v.GetFloat64(TracingSampleRateKey),
	}
	if !config.Enabled {
		return config, nil
	}
	if config.TraceSampleRate < 0 || config.TraceSampleRate > 1 {
		return trace.Config{}, fmt.Errorf("%w: %f", errInvalidSampleRate, config.TraceSampleRate)
	}
	if config.Endpoint == "" {
		return trace.Config{}, fmt.Errorf("%w: %s", errMissingEndpoint, TracingEndpointKey)
	}
	return config, nil
}

func getServerConfig(v *viper.Viper) server.Config {
	return server.Config{
		Host:           v.GetString(HTTPHostKey),
		Port:           uint16(v.GetUint(HTTPPortKey)),
		AllowedOrigins: v.GetStringSlice(HTTPAllowedOriginsKey),
		ProxyProtocol:  v.GetBool(HTTPProxyProtocolKey),
	}
}

func getClientsConfig(v *viper.Viper) (ClientsConfig, error) {
	chain, err := chains.ByName(v.GetString(ChainKey))
	if err != nil {
		return ClientsConfig{}, err
	}

	config := ClientsConfig{
		NanceAPI:          v.GetString(NanceAPIKey),
		SnapshotHub:       v.GetString(SnapshotHubKey),
		SnapshotAPIKey:    v.GetString(SnapshotAPIKeyKey),
		Chain:             chain,
		RPCURL:            v.GetString(RPCURLKey),
		ExplorerAPI:       v.GetString(ExplorerAPIKey),
		ExplorerAPIKey:    v.GetString(ExplorerAPIKeyKey),
		ExplorerRateLimit: v.GetFloat64(ExplorerRateLimitKey),
		JuiceboxAPI:       v.GetString(JuiceboxAPIKey),
		SafeAPI:           v.GetString(SafeAPIKey),
		IPFSAPI:           v.GetString(IPFSAPIKey),
		IPFSGateway:       v.GetString(IPFSGatewayKey),
		IPFSCredentials: ipfs.Credentials{
			ID:     v.GetString(IPFSIDKey),
			Secret: v.GetString(IPFSSecretKey),
		},
	}
	if config.RPCURL == "" {
		config.RPCURL = chain.RPCURL
	}
	if config.ExplorerAPI == "" {
		config.ExplorerAPI = chain.ExplorerAPIURL
	}
	if config.SafeAPI == "" {
		config.SafeAPI = safe.TransactionServiceURL(chain)
	}

	switch {
	case config.NanceAPI == "":
		return ClientsConfig{}, fmt.Errorf("%w: %s", errMissingEndpoint, NanceAPIKey)
	case config.SnapshotHub == "":
		return ClientsConfig{}, fmt.Errorf("%w: %s", errMissingEndpoint, SnapshotHubKey)
	case config.ExplorerRateLimit <= 0:
		return ClientsConfig{}, fmt.Errorf("%w: %f", errInvalidRateLimit, config.ExplorerRateLimit)
	}
	return config, nil
}

// GetConfig reads the typed configuration out of [v]
func GetConfig(v *viper.Viper) (Config, error) {
	config := Config{
		Logging: getLoggingConfig(v),
		Server:  getServerConfig(v),
		Portal: portal.Config{
			ProposalsLimit: v.GetInt(ProposalsLimitKey),
			VotesLimit:     v.GetInt(VotesLimitKey),
		},
		MetricsNamespace: v.GetString(MetricsNamespaceKey),
		PrivateKey:       v.GetString(PrivateKeyKey),
	}

	var err error
	config.Tracing, err = getTracingConfig(v)
	if err != nil {
		return Config{}, err
	}
	config.Clients, err = getClientsConfig(v)
	if err != nil {
		return Config{}, err
	}
	return config, nil
}
