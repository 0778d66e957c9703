// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"github.com/spf13/pflag"

	"github.com/chain4travel/nance/explorer"
	"github.com/chain4travel/nance/ipfs"
	"github.com/chain4travel/nance/juicebox"
	"github.com/chain4travel/nance/nance"
	"github.com/chain4travel/nance/portal"
	"github.com/chain4travel/nance/snapshot"
	"github.com/chain4travel/nance/utils/logging"
)

const (
	AppName = "nance"

	DefaultHTTPPort = 9650
)

// BuildFlagSet returns the flags every command understands
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(AppName, pflag.ContinueOnError)
	addProcessFlags(fs)
	addClientFlags(fs)
	addServerFlags(fs)
	return fs
}

func addProcessFlags(fs *pflag.FlagSet) {
	fs.String(ConfigFileKey, "", "Specifies a config file")

	// Logging
	fs.String(LogLevelKey, "info", "The log level. Should be one of {debug, info, warn, error, fatal}")
	fs.String(LogFormatKey, logging.AutoFormat, "The structure of log format. Should be one of {auto, plain, json}")
	fs.String(LogDirKey, "", "Logging directory. Empty disables file output")
	fs.Int(LogMaxSizeKey, 8, "The maximum file size in megabytes of the log file before it gets rotated")
	fs.Int(LogMaxFilesKey, 7, "The maximum number of old log files to retain")
	fs.Int(LogMaxAgeKey, 0, "The maximum number of days to retain old log files. 0 means retain all old log files")
	fs.Bool(LogCompressKey, false, "Enables the compression of rotated log files through gzip")

	// Tracing
	fs.Bool(TracingEnabledKey, false, "If true, enable opentelemetry tracing")
	fs.String(TracingEndpointKey, "localhost:4318", "The host:port of the OTLP HTTP collector")
	fs.Bool(TracingInsecureKey, true, "If true, don't use TLS when sending trace data")
	fs.Float64(TracingSampleRateKey, 0.1, "The fraction of traces to sample. If >= 1, always sample. If <= 0, never sample")
	fs.StringToString(TracingHeadersKey, map[string]string{}, "The headers to provide the trace indexer")

	fs.String(MetricsNamespaceKey, AppName, "Namespace of the exported metrics")
}

func addClientFlags(fs *pflag.FlagSet) {
	fs.String(NanceAPIKey, nance.DefaultEndpoint, "Proposal API endpoint")
	fs.String(SnapshotHubKey, snapshot.DefaultHub, "Snapshot hub endpoint")
	fs.String(SnapshotAPIKeyKey, "", "API key sent to the snapshot hub")
	fs.String(ChainKey, "", "Chain treasury reads and explorer lookups go to. Defaults to mainnet")
	fs.String(RPCURLKey, "", "JSON-RPC endpoint of the chain. Defaults to the public endpoint of the chain")
	fs.String(ExplorerAPIKey, "", "Etherscan compatible API. Defaults to the explorer of the chain")
	fs.String(ExplorerAPIKeyKey, "", "API key of the block explorer")
	fs.Float64(ExplorerRateLimitKey, explorer.DefaultRateLimit, "Maximum number of explorer requests per second")
	fs.String(JuiceboxAPIKey, juicebox.DefaultEndpoint, "Juicebox project API endpoint")
	fs.String(SafeAPIKey, "", "Safe transaction service. Defaults to the service of the chain")
	fs.String(IPFSAPIKey, ipfs.DefaultAPI, "IPFS pinning API")
	fs.String(IPFSGatewayKey, ipfs.DefaultGateway, "IPFS gateway uploaded files are served from")
	fs.String(IPFSIDKey, "", "Project id of the IPFS pinning API")
	fs.String(IPFSSecretKey, "", "Project secret of the IPFS pinning API")

	fs.String(PrivateKeyKey, "", "Hex encoded private key used to sign proposals and votes")

	fs.Int(ProposalsLimitKey, portal.DefaultProposalsLimit, "Number of proposals listed per page")
	fs.Int(VotesLimitKey, portal.DefaultVotesLimit, "Maximum number of votes loaded along a proposal")
}

func addServerFlags(fs *pflag.FlagSet) {
	fs.String(HTTPHostKey, "127.0.0.1", "Address of the HTTP server")
	fs.Uint16(HTTPPortKey, DefaultHTTPPort, "Port of the HTTP server")
	fs.StringSlice(HTTPAllowedOriginsKey, []string{"*"}, "Origins to allow on the HTTP port")
	fs.Bool(HTTPProxyProtocolKey, false, "If true, the HTTP server expects PROXY protocol headers")
}
