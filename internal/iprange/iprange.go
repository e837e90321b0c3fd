// Package iprange enumerates IPv4 target addresses from subnet prefixes,
// CIDR blocks and target files.
package iprange

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Sources names the places target addresses come from. Any combination may
// be set; Enumerate concatenates them in the order subnet, CIDR, file.
type Sources struct {
	Subnet string // 3-octet prefix, e.g. "10.10.10", expanded as a /24
	CIDR   string // CIDR block, e.g. "192.0.2.0/28"
	File   string // path to a file of addresses and/or CIDR blocks
}

// Enumerate builds the combined target list. Errors from the subnet and
// CIDR sources are fatal; malformed target-file lines are reported and
// skipped inside ReadTargets.
func (s Sources) Enumerate() ([]net.IP, error) {
	var targets []net.IP

	if s.Subnet != "" {
		ips, err := SubnetHosts(s.Subnet)
		if err != nil {
			return nil, err
		}
		targets = append(targets, ips...)
	}
	if s.CIDR != "" {
		ips, err := ExpandCIDR(s.CIDR)
		if err != nil {
			return nil, err
		}
		targets = append(targets, ips...)
	}
	if s.File != "" {
		ips, err := ReadTargets(s.File)
		if err != nil {
			return nil, err
		}
		targets = append(targets, ips...)
	}

	return targets, nil
}

// SubnetHosts expands a 3-octet prefix into the usable hosts of
// <prefix>.0/24, e.g. "10.10.10" yields 10.10.10.1 through 10.10.10.254.
func SubnetHosts(prefix string) ([]net.IP, error) {
	octets := strings.Split(prefix, ".")
	if len(octets) != 3 {
		return nil, fmt.Errorf("invalid subnet prefix %q: want three octets (e.g. 10.10.10)", prefix)
	}
	for _, o := range octets {
		n, err := strconv.Atoi(o)
		if err != nil || n < 0 || n > 255 {
			return nil, fmt.Errorf("invalid subnet prefix %q: bad octet %q", prefix, o)
		}
	}
	return ExpandCIDR(prefix + ".0/24")
}

// ExpandCIDR returns the usable host addresses of an IPv4 CIDR block in
// ascending order. The network and broadcast addresses are excluded; a /31
// yields both of its addresses and a /32 yields the single address.
func ExpandCIDR(cidr string) ([]net.IP, error) {
	_, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		return nil, fmt.Errorf("invalid CIDR %q: %w", cidr, err)
	}
	ip4 := ipnet.IP.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("invalid CIDR %q: only IPv4 blocks are supported", cidr)
	}

	ones, bits := ipnet.Mask.Size()
	size := uint64(1) << uint(bits-ones)
	first := uint64(binary.BigEndian.Uint32(ip4))
	last := first + size - 1
	if ones < 31 {
		// Drop network and broadcast addresses.
		first++
		last--
	}

	ips := make([]net.IP, 0, last-first+1)
	for v := first; v <= last; v++ {
		ip := make(net.IP, net.IPv4len)
		binary.BigEndian.PutUint32(ip, uint32(v))
		ips = append(ips, ip)
	}
	return ips, nil
}

// ReadTargets reads a target file line by line. Blank lines are skipped, a
// line containing a prefix-length separator is expanded as a CIDR block,
// and anything else is validated as a single IPv4 address. Malformed lines
// are reported and skipped; they never abort the scan.
func ReadTargets(path string) ([]net.IP, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open target file: %w", err)
	}
	defer f.Close()

	var targets []net.IP
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.Contains(line, "/") {
			ips, err := ExpandCIDR(line)
			if err != nil {
				log.Warn("skipping invalid CIDR", "file", path, "line", lineno, "entry", line)
				continue
			}
			targets = append(targets, ips...)
			continue
		}

		ip := net.ParseIP(line)
		if ip == nil || ip.To4() == nil {
			log.Warn("skipping invalid address", "file", path, "line", lineno, "entry", line)
			continue
		}
		targets = append(targets, ip.To4())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read target file: %w", err)
	}

	return targets, nil
}
