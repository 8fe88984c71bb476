package provider

import (
	"testing"

	interfaces "main/internal/domain/interfaces"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionsAddReturnsOnlyNewChannels(t *testing.T) {
	subs := newSubscriptions()

	added := subs.Add("BTC/USDT", []interfaces.Channel{interfaces.ChannelQuotes, interfaces.ChannelTrades})
	assert.ElementsMatch(t, []interfaces.Channel{interfaces.ChannelQuotes, interfaces.ChannelTrades}, added)

	added = subs.Add("BTC/USDT", []interfaces.Channel{interfaces.ChannelQuotes, interfaces.ChannelDepth})
	assert.Equal(t, []interfaces.Channel{interfaces.ChannelDepth}, added)
}

func TestSubscriptionsRemoveIsIdempotent(t *testing.T) {
	subs := newSubscriptions()
	subs.Add("BTC/USDT", []interfaces.Channel{interfaces.ChannelQuotes})

	removed := subs.Remove("BTC/USDT", []interfaces.Channel{interfaces.ChannelQuotes})
	assert.Equal(t, []interfaces.Channel{interfaces.ChannelQuotes}, removed)

	assert.Nil(t, subs.Remove("BTC/USDT", []interfaces.Channel{interfaces.ChannelQuotes}))
	assert.Nil(t, subs.Remove("ETH/USDT", []interfaces.Channel{interfaces.ChannelQuotes}))
	assert.Empty(t, subs.Symbols())
}

func TestSubscriptionsSnapshotForReplay(t *testing.T) {
	subs := newSubscriptions()
	subs.Add("BTC/USDT", []interfaces.Channel{interfaces.ChannelQuotes})
	subs.Add("ETH/USDT", []interfaces.Channel{interfaces.ChannelTrades, interfaces.ChannelDepth})

	snapshot := subs.Snapshot()
	assert.Len(t, snapshot, 2)
	assert.ElementsMatch(t, []interfaces.Channel{interfaces.ChannelQuotes}, snapshot["BTC/USDT"])
	assert.ElementsMatch(t, []interfaces.Channel{interfaces.ChannelTrades, interfaces.ChannelDepth}, snapshot["ETH/USDT"])
}
