package ethereum

import "math/big"

// registryABIJSON is the subset of the film registry ABI the gateway calls
const registryABIJSON = `[
	{"inputs":[{"name":"account","type":"address"},{"name":"id","type":"uint256"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"nextTokenId","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"films","outputs":[{"name":"filmId","type":"string"},{"name":"title","type":"string"},{"name":"supply","type":"uint256"},{"name":"price","type":"uint256"},{"name":"creator","type":"address"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"getRightsThresholds","outputs":[{"components":[{"name":"quantity","type":"uint256"},{"name":"label","type":"string"}],"name":"","type":"tuple[]"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"filmId","type":"string"},{"name":"title","type":"string"},{"name":"supply","type":"uint256"},{"name":"price","type":"uint256"},{"components":[{"name":"quantity","type":"uint256"},{"name":"label","type":"string"}],"name":"thresholds","type":"tuple[]"},{"name":"royaltyRecipients","type":"address[]"},{"name":"royaltyBps","type":"uint256[]"}],"name":"createFilm","outputs":[{"name":"","type":"uint256"}],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"},{"name":"metadataURI","type":"string"}],"name":"setFilmMetadata","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"},{"name":"quantity","type":"uint256"}],"name":"purchaseTokens","outputs":[],"stateMutability":"payable","type":"function"}
]`

// thresholdTuple mirrors the (uint256 quantity, string label) tuple of the registry
type thresholdTuple struct {
	Quantity *big.Int
	Label    string
}
