package id

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func init() {
	nodeID := int64(1)
	if v := os.Getenv("SNOWFLAKE_NODE_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			nodeID = n
		}
	}

	var err error
	node, err = snowflake.NewNode(nodeID)
	if err != nil {
		panic("id: initializing snowflake node: " + err.Error())
	}
}

// New returns a time-ordered unique int64 ID.
func New() int64 {
	return node.Generate().Int64()
}
