// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	ConfigFileKey = "config-file"

	LogLevelKey    = "log-level"
	LogFormatKey   = "log-format"
	LogDirKey      = "log-dir"
	LogMaxSizeKey  = "log-rotater-max-size"
	LogMaxFilesKey = "log-rotater-max-files"
	LogMaxAgeKey   = "log-rotater-max-age"
	LogCompressKey = "log-rotater-compress-enabled"

	NanceAPIKey          = "nance-api"
	SnapshotHubKey       = "snapshot-hub"
	SnapshotAPIKeyKey    = "snapshot-api-key"
	ChainKey             = "chain"
	RPCURLKey            = "rpc-url"
	ExplorerAPIKey       = "explorer-api"
	ExplorerAPIKeyKey    = "explorer-api-key"
	ExplorerRateLimitKey = "explorer-rate-limit"
	JuiceboxAPIKey       = "juicebox-api"
	SafeAPIKey           = "safe-api"
	IPFSAPIKey           = "ipfs-api"
	IPFSGatewayKey       = "ipfs-gateway"
	IPFSIDKey            = "ipfs-id"
	IPFSSecretKey        = "ipfs-secret"

	PrivateKeyKey = "private-key"

	ProposalsLimitKey = "proposals-limit"
	VotesLimitKey     = "votes-limit"

	HTTPHostKey           = "http-host"
	HTTPPortKey           = "http-port"
	HTTPAllowedOriginsKey = "http-allowed-origins"
	HTTPProxyProtocolKey  = "http-proxy-protocol-enabled"

	MetricsNamespaceKey = "metrics-namespace"

	TracingEnabledKey    = "tracing-enabled"
	TracingEndpointKey   = "tracing-endpoint"
	TracingInsecureKey   = "tracing-insecure"
	TracingSampleRateKey = "tracing-sample-rate"
	TracingHeadersKey    = "tracing-headers"
)
