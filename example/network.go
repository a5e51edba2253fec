package main

// Network delivers anonymous tickets to the verifier.
type Network interface {
	Send(ticket []byte)
	Next() <-chan []byte
	Close()
}

type chanNetwork struct {
	tickets chan []byte
}

func NewNetwork(members int) Network {
	return &chanNetwork{tickets: make(chan []byte, members)}
}

func (c *chanNetwork) Next() <-chan []byte {
	return c.tickets
}

func (c *chanNetwork) Send(ticket []byte) {
	c.tickets <- ticket
}

func (c *chanNetwork) Close() {
	close(c.tickets)
}
