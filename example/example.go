// Command example runs an anonymous committee sortition: every member of a
// ring evaluates the VRF on the epoch, and those whose output falls under a
// threshold publish a Ring-VRF signature as a ticket. The verifier learns the
// tickets, but not which members won.
package main

import (
	"crypto/rand"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/taurusgroup/ring-vrf/internal/test"
	"github.com/taurusgroup/ring-vrf/pkg/ring"
	"github.com/taurusgroup/ring-vrf/pkg/ringvrf"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
	"github.com/taurusgroup/ring-vrf/pkg/vrf"
	"golang.org/x/sync/errgroup"
)

const (
	members = 16
	// threshold selects about a quarter of the members.
	threshold = 0x40
)

// Member signs a ticket for the epoch if it wins the draw.
func Member(index int, sk *vrf.SecretKey, ctx *ring.Context, pk *ring.ProverKey, epoch []byte, n Network, log zerolog.Logger) error {
	input, err := vrf.NewInput(sk.Suite(), epoch)
	if err != nil {
		return err
	}
	if sk.Output(input).Hash()[0] >= threshold {
		return nil
	}
	prover, err := ctx.Prover(pk, index)
	if err != nil {
		return err
	}
	sig, err := ringvrf.Sign(rand.Reader, sk, input, nil, prover)
	if err != nil {
		return err
	}
	ticket, err := sig.MarshalBinary()
	if err != nil {
		return err
	}
	log.Info().Int("member", index).Int("bytes", len(ticket)).Msg("ticket sent")
	n.Send(ticket)
	return nil
}

// Verify checks every ticket received on n against the ring, and returns the
// winning VRF outputs.
func Verify(s *suite.Suite, verifier *ring.Verifier, epoch []byte, n Network) ([][]byte, error) {
	input, err := vrf.NewInput(s, epoch)
	if err != nil {
		return nil, err
	}
	var (
		mtx     sync.Mutex
		winners [][]byte
		g       errgroup.Group
	)
	for ticket := range n.Next() {
		g.Go(func() error {
			sig := ringvrf.EmptySignature(s)
			if err := sig.UnmarshalBinary(ticket); err != nil {
				return err
			}
			if err := ringvrf.Verify(input, nil, sig, verifier); err != nil {
				return err
			}
			out := sig.Output().Hash()
			if out[0] >= threshold {
				return fmt.Errorf("ticket above threshold: %x", out[:4])
			}
			mtx.Lock()
			winners = append(winners, out)
			mtx.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return winners, nil
}

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	s := suite.BandersnatchSHA512()
	ctx, err := ring.NewContext(s, test.SRS(ring.SRSSize(members)), members, ring.WithLogger(log.Level(zerolog.DebugLevel)))
	if err != nil {
		log.Fatal().Err(err).Msg("context")
	}
	secrets, keys := test.Keys(s, members)
	pk, err := ctx.ProverKey(keys)
	if err != nil {
		log.Fatal().Err(err).Msg("prover key")
	}
	vk, err := ctx.VerifierKey(keys)
	if err != nil {
		log.Fatal().Err(err).Msg("verifier key")
	}
	epoch := []byte("epoch 1")

	n := NewNetwork(len(secrets))
	var wg sync.WaitGroup
	for i, sk := range secrets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := Member(i, sk, ctx, pk, epoch, n, log); err != nil {
				log.Error().Err(err).Int("member", i).Msg("member failed")
			}
		}()
	}
	wg.Wait()
	n.Close()

	winners, err := Verify(s, ctx.Verifier(vk), epoch, n)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid ticket")
	}
	for _, w := range winners {
		log.Info().Hex("output", w[:8]).Msg("committee seat")
	}
	log.Info().Int("seats", len(winners)).Int("ring", len(keys)).Msg("sortition done")
}
