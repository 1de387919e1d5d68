package snowflakeid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
)

var (
	ErrBadWorkerCIDR = errors.New("provided worker CIDR is invalid")
	ErrBadNodeIP     = errors.New("node ip invalid")
	ErrMaskRange     = errors.New("the CIDR mask selects more host bits than the worker field holds")
)

// WorkerIDFromCIDR derives a worker id from the node's private ip address.
// The CIDR prefix chooses which low bits of the address become the id: the
// host bits must fit the worker field, so prefixes /22 through /31 are
// accepted. Two nodes with distinct addresses inside the same worker CIDR
// can never derive the same id.
func WorkerIDFromCIDR(workerCIDR string, nodeIP string) (uint64, error) {
	mask, err := parseWorkerMask(workerCIDR)
	if err != nil {
		return 0, err
	}
	ip, err := parseNodeIP(nodeIP)
	if err != nil {
		return 0, err
	}
	masked := ip.Mask(mask)
	return uint64(binary.BigEndian.Uint16(masked[2:])), nil
}

// parseWorkerMask parses the CIDR which configures how many bits to take
// from the node ip, and errors if that allocation exceeds the worker field.
func parseWorkerMask(workerCIDR string) (net.IPMask, error) {
	_, ipNet, err := net.ParseCIDR(workerCIDR)
	if err != nil {
		return nil, fmt.Errorf("%s - issue parsing CIDR: %w", workerCIDR, err)
	}
	ones, bits := ipNet.Mask.Size()
	if bits != 32 {
		return nil, fmt.Errorf("%s - worker CIDRs are ipv4: %w", workerCIDR, ErrBadWorkerCIDR)
	}
	hostBits := bits - ones
	if hostBits > WorkerBits {
		return nil, fmt.Errorf("%s - allows too many addresses: %w", workerCIDR, ErrMaskRange)
	}
	if hostBits == 0 {
		return nil, fmt.Errorf("%s - allows a single address: %w", workerCIDR, ErrMaskRange)
	}
	return invertIPMask(ipNet.Mask), nil
}

// invertIPMask inverts the mask in place and also returns it
func invertIPMask(mask net.IPMask) net.IPMask {
	for i := range mask {
		mask[i] = ^mask[i]
	}
	return mask
}

// parseNodeIP parses a node ip address and requires that it is allocated
// from a known private ipv4 range.
func parseNodeIP(nodeIP string) (net.IP, error) {
	ip := net.ParseIP(nodeIP)
	if ip == nil {
		return nil, fmt.Errorf("%s - issue parsing IP: %w", nodeIP, ErrBadNodeIP)
	}
	if !ip.IsPrivate() {
		return nil, fmt.Errorf("%s - is not a private ip: %w", nodeIP, ErrBadNodeIP)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("%s - is not an ipv4 address: %w", nodeIP, ErrBadNodeIP)
	}
	return ip4, nil
}
