// This file is part of GopherVec.
//
// GopherVec is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherVec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherVec.  If not, see <https://www.gnu.org/licenses/>.

package psg

// writeSample integrates the chip state over one sample interval and
// appends the resulting PCM value to the sample buffer. When the buffer is
// full it is submitted to the sink.
//
// Rather than stepping every channel every machine cycle, the interval is
// divided at noise-event boundaries and each channel's square wave output
// is integrated across the sub-intervals, weighted by its period. The
// method comes from JEMU.
func (psg *PSG) writeSample() {
	if psg.disableToneA {
		if psg.count[chanA] <= step {
			psg.count[chanA] += step
		}
		psg.output[chanA] = 1
	}
	if psg.disableToneB {
		if psg.count[chanB] <= step {
			psg.count[chanB] += step
		}
		psg.output[chanB] = 1
	}
	if psg.disableToneC {
		if psg.count[chanC] <= step {
			psg.count[chanC] += step
		}
		psg.output[chanC] = 1
	}

	psg.outNoise = psg.output[chanNoise] | psg.enable
	if psg.disableAllNoise {
		if psg.count[chanNoise] <= step {
			psg.count[chanNoise] += step
		}
	}

	var cnt [3]int

	left := step
	for {
		// integrate only as far as the next noise event
		add := psg.count[chanNoise]
		if add > left {
			add = left
		}

		for channel := chanA; channel <= chanC; channel++ {
			channelCount := psg.count[channel]

			if psg.outNoise&(0x08<<channel) != 0 {
				// the noise generator output is high (or inhibited) for
				// this channel so the tone is audible. accumulate the time
				// the square wave spends high
				val := cnt[channel]
				if psg.output[channel] != 0 {
					val += channelCount
				}

				channelCount -= add
				if channelCount <= 0 {
					channelPeriod := psg.period[channel]
					for {
						channelCount += channelPeriod
						if channelCount > 0 {
							psg.output[channel] ^= 0x01
							if psg.output[channel] != 0 {
								val += channelPeriod - channelCount
							}
							break
						}
						val += channelPeriod
						channelCount += channelPeriod
						if channelCount > 0 {
							if psg.output[channel] == 0 {
								val -= channelCount
							}
							break
						}
					}
				} else if psg.output[channel] != 0 {
					val -= channelCount
				}

				cnt[channel] = val
			} else {
				// channel is silenced by the noise generator; keep the
				// square wave phase moving without accumulating
				channelCount -= add
				if channelCount <= 0 {
					channelPeriod := psg.period[channel]
					for {
						channelCount += channelPeriod
						if channelCount > 0 {
							psg.output[channel] ^= 0x01
							break
						}
						channelCount += channelPeriod
						if channelCount > 0 {
							break
						}
					}
				}
			}

			psg.count[channel] = channelCount
		}

		psg.count[chanNoise] -= add
		if psg.count[chanNoise] <= 0 {
			// the 17-bit LFSR of the 8912. the output flips when the low
			// two bits of the seed differ
			if (psg.random+1)&0x02 != 0 {
				psg.output[chanNoise] ^= 0xff
				psg.outNoise = psg.output[chanNoise] | psg.enable
			}
			if psg.random&0x01 == 0 {
				psg.random >>= 1
			} else {
				psg.random = (psg.random ^ 0x28000) >> 1
			}
			psg.count[chanNoise] += psg.period[chanNoise]
		}

		left -= add
		if left <= 0 {
			break
		}
	}

	// step the envelope
	if psg.holding == 0 && psg.period[chanEnvelope] != 0 {
		psg.count[chanEnvelope] -= step
		if psg.count[chanEnvelope] <= 0 {
			ce := psg.countEnv
			envelopePeriod := psg.period[chanEnvelope]
			for {
				ce--
				psg.count[chanEnvelope] += envelopePeriod
				if psg.count[chanEnvelope] > 0 {
					break
				}
			}

			if ce < 0 {
				if psg.hold != 0 {
					if psg.alternate != 0 {
						psg.attack ^= 0x0f
					}
					psg.holding = 1
					ce = 0
				} else {
					if psg.alternate != 0 && ce&0x10 != 0 {
						psg.attack ^= 0x0f
					}
					ce &= 0x0f
				}
			}

			psg.countEnv = ce
			psg.volumeEnvelope = ce ^ psg.attack
			psg.applyEnvelopeVolume()
		}
	}

	sample := (((volumeLevels[psg.volumeA] * cnt[chanA]) >> 13) +
		((volumeLevels[psg.volumeB] * cnt[chanB]) >> 13) +
		((volumeLevels[psg.volumeC] * cnt[chanC]) >> 13)) & 0x7fff

	psg.sampleBuffer[psg.sampleBufferOffset] = int16(sample)
	psg.sampleBufferOffset++

	if psg.sampleBufferOffset == len(psg.sampleBuffer) {
		if psg.sink != nil {
			// the buffer is reused immediately so the sink must not retain
			// the slice
			_ = psg.sink.SetAudio(psg.sampleBuffer)
		}
		psg.sampleBufferOffset = 0
	}
}
